package cli

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	app "meme-bot/internal/application"
	"meme-bot/internal/container"
	"meme-bot/internal/domain/entity"
	"meme-bot/internal/infrastructure/analyzer"
	"meme-bot/internal/infrastructure/download"
	"meme-bot/internal/infrastructure/storage"
	"meme-bot/internal/logging"
)

func newAnalyzeCommand() *cobra.Command {
	var (
		downloadMeme bool
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze an image file",
		Long:  "Send a PNG, JPEG or GIF image (up to 16MB) for emotion analysis and print the result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if outDir == "" {
				outDir = cfg.DownloadDir
			}

			payload, err := filePayload(args[0])
			if err != nil {
				return err
			}

			client, err := analyzer.NewHTTPClient(cfg.AnalyzerURL, nil)
			if err != nil {
				return err
			}

			c := container.New(storage.NewMemorySessionRepository(), client, logging.New("controller"))
			view := NewTerminalView(cmd.OutOrStdout(), plain)
			ctrl := c.NewController(view, nil, download.NewFileDownloader(outDir, nil))
			defer ctrl.Close()

			if err := ctrl.SelectFile(cmd.Context(), payload); err != nil {
				return err
			}

			if downloadMeme {
				return saveMeme(cmd, ctrl, outDir)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&downloadMeme, "download", "d", false, "save the generated meme as my-meme.jpg")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the downloaded meme (default DOWNLOAD_DIR)")

	return cmd
}

// saveMeme скачивает мем из результата. Без мема ничего не пишет.
func saveMeme(cmd *cobra.Command, ctrl *app.Controller, outDir string) error {
	if ctrl.MemeURL() == "" {
		return nil
	}
	if err := ctrl.DownloadCurrentMeme(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", filepath.Join(outDir, app.MemeFileName))
	return nil
}

// filePayload описывает файл на диске. Тип определяется по расширению.
func filePayload(path string) (entity.ImagePayload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return entity.ImagePayload{}, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return entity.ImagePayload{}, fmt.Errorf("%s is a directory", path)
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}

	return entity.ImagePayload{
		Name:      filepath.Base(path),
		MediaType: mediaType,
		Size:      info.Size(),
		Open: func(context.Context) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}
