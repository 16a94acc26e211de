package cli

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"meme-bot/config"
	"meme-bot/internal/logging"
)

var (
	cfgFile   string
	serverURL string
	verbose   bool
	plain     bool
)

// NewRootCommand создаёт корневую команду
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meme-bot",
		Short: "Turn a face photo into an emotion meme",
		Long: `meme-bot sends a photo to the emotion analysis service and shows
the detected emotion, per-emotion scores and the generated meme.

Photos can come from a file, the device camera or a Telegram chat.`,
		SilenceUsage: true,
	}

	// Глобальные флаги
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (YAML)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "analysis service URL (overrides ANALYZER_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable colored output")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newCameraCommand())
	rootCmd.AddCommand(newBotCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setup загружает конфигурацию, применяет флаги и настраивает логгер.
// Возвращённую функцию нужно вызвать при выходе.
func setup() (*config.Config, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if serverURL != "" {
		cfg.AnalyzerURL = serverURL
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	closeLog := logging.Init(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	cleanup := func() {
		if err := closeLog(); err != nil {
			fmt.Printf("close log: %v\n", err)
		}
	}

	log.Debug().
		Str("analyzer_url", cfg.AnalyzerURL).
		Int("camera_device", cfg.CameraDevice).
		Str("download_dir", cfg.DownloadDir).
		Msg("config loaded")

	return cfg, cleanup, nil
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "meme-bot %s (%s) built on %s\n", version, commit, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	}
}
