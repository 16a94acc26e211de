package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	telegram "meme-bot/internal/api"
	"meme-bot/internal/container"
	"meme-bot/internal/infrastructure/analyzer"
	"meme-bot/internal/infrastructure/storage"
	"meme-bot/internal/logging"
)

func newBotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Long:  "Run a Telegram bot that analyzes photos sent to it. Requires TELEGRAM_TOKEN.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if cfg.TelegramToken == "" {
				return errors.New("TELEGRAM_TOKEN is required")
			}

			client, err := analyzer.NewHTTPClient(cfg.AnalyzerURL, nil)
			if err != nil {
				return err
			}

			// Создаём хранилище сессий
			sessionRepo := storage.NewMemorySessionRepository()

			// Собираем сервисы приложения
			appContainer := container.New(sessionRepo, client, logging.New("controller"))

			bot, err := telegram.NewBot(cfg.TelegramToken, appContainer.SessionService, logging.New("telegram"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Str("analyzer_url", cfg.AnalyzerURL).Msg("bot is running")
			return bot.Run(ctx)
		},
	}
}
