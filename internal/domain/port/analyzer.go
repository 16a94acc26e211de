package port

import (
	"context"

	"meme-bot/internal/domain/entity"
)

// Analyzer клиент сервиса анализа эмоций
type Analyzer interface {
	// Analyze отправляет изображение и возвращает результат анализа.
	// Отказ сервиса возвращается как *entity.UserError с видом ErrUploadFailed.
	Analyze(ctx context.Context, payload entity.ImagePayload) (*entity.AnalysisResult, error)
}
