package container

import (
	"github.com/rs/zerolog"

	app "meme-bot/internal/application"
	"meme-bot/internal/domain/port"
)

type Container struct {
	Analyzer       port.Analyzer
	SessionService *app.SessionService
	log            zerolog.Logger
}

func New(sessionRepo port.SessionRepository, analyzer port.Analyzer, logger zerolog.Logger) *Container {
	sessionService := app.NewSessionService(sessionRepo, analyzer, logger)

	return &Container{
		Analyzer:       analyzer,
		SessionService: sessionService,
		log:            logger,
	}
}

// NewController собирает контроллер для одиночного представления (терминал).
func (c *Container) NewController(view port.View, camera port.Camera, downloader port.Downloader) *app.Controller {
	return app.NewController(view, c.Analyzer, camera, downloader, c.log)
}
