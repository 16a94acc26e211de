package entity

import "time"

// Session снимок состояния чата в Telegram.
type Session struct {
	ChatID      int64
	Panel       Panel     // последняя отрисованная панель
	LastMemeURL string    // мем из последнего успешного анализа
	UpdatedAt   time.Time
}

// NewSession создаёт сессию в начальном состоянии.
func NewSession(chatID int64) *Session {
	return &Session{
		ChatID:    chatID,
		Panel:     PanelUpload,
		UpdatedAt: time.Now(),
	}
}

// Apply обновляет снимок по отрисованному состоянию.
func (s *Session) Apply(state ViewState) {
	s.Panel = state.Panel
	if state.Panel == PanelResults && state.Result != nil {
		s.LastMemeURL = state.Result.MemeImage
	}
	s.UpdatedAt = time.Now()
}
