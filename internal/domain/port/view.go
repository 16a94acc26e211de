package port

import "meme-bot/internal/domain/entity"

// View отрисовывает одну панель интерфейса.
// Render вызывается под блокировкой контроллера, поэтому View не должен
// обращаться к контроллеру из Render.
type View interface {
	Render(state entity.ViewState)
}
