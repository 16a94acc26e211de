package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"meme-bot/internal/domain/entity"
	"meme-bot/internal/domain/port"
)

// Frontend создаёт представление и способ скачивания для конкретного чата.
type Frontend interface {
	ViewFor(chatID int64) port.View
	DownloaderFor(chatID int64) port.Downloader
}

// SessionService держит по контроллеру на чат и снимки их состояния.
type SessionService struct {
	repo     port.SessionRepository
	analyzer port.Analyzer
	log      zerolog.Logger

	mu          sync.Mutex
	controllers map[int64]*Controller
}

// NewSessionService создаёт сервис сессий.
func NewSessionService(repo port.SessionRepository, analyzer port.Analyzer, logger zerolog.Logger) *SessionService {
	return &SessionService{
		repo:        repo,
		analyzer:    analyzer,
		log:         logger,
		controllers: make(map[int64]*Controller),
	}
}

// Controller возвращает контроллер чата, создаёт новый при первом обращении.
func (s *SessionService) Controller(chatID int64, frontend Frontend) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.controllers[chatID]; ok {
		return c
	}

	view := &recordingView{
		next:   frontend.ViewFor(chatID),
		repo:   s.repo,
		chatID: chatID,
		log:    s.log,
	}
	logger := s.log.With().Int64("chat_id", chatID).Logger()
	// В чате нет камеры устройства: снимки приходят фотографиями.
	c := NewController(view, s.analyzer, nil, frontend.DownloaderFor(chatID), logger)
	s.controllers[chatID] = c
	return c
}

// Status возвращает снимок состояния чата.
func (s *SessionService) Status(ctx context.Context, chatID int64) (*entity.Session, error) {
	return s.repo.Get(ctx, chatID)
}

// End закрывает контроллер чата и удаляет его сессию.
func (s *SessionService) End(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	c, ok := s.controllers[chatID]
	delete(s.controllers, chatID)
	s.mu.Unlock()

	if ok {
		c.Close()
	}
	return s.repo.Delete(ctx, chatID)
}

// CloseAll закрывает все контроллеры.
func (s *SessionService) CloseAll() {
	s.mu.Lock()
	controllers := s.controllers
	s.controllers = make(map[int64]*Controller)
	s.mu.Unlock()

	for _, c := range controllers {
		c.Close()
	}
}

// recordingView сохраняет снимок каждой отрисованной панели.
type recordingView struct {
	next   port.View
	repo   port.SessionRepository
	chatID int64
	log    zerolog.Logger
}

func (v *recordingView) Render(state entity.ViewState) {
	ctx := context.Background()

	session, err := v.repo.Get(ctx, v.chatID)
	if err == nil {
		session.Apply(state)
		err = v.repo.Save(ctx, session)
	}
	if err != nil {
		v.log.Error().Err(err).Int64("chat_id", v.chatID).Msg("save session failed")
	}

	v.next.Render(state)
}
