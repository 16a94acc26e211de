package telegram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"meme-bot/internal/domain/entity"
)

func TestFormatResult_SortedScores(t *testing.T) {
	res := &entity.AnalysisResult{
		Emotion:            "Happy",
		EmotionDescription: "You look happy!",
		Confidence:         92,
		FaceCount:          1,
		EmotionScores: entity.EmotionScores{
			{Emotion: "Happy", Score: 92},
			{Emotion: "Sad", Score: 3},
			{Emotion: "Angry", Score: 5},
		},
	}

	text := formatResult(entity.ViewState{Panel: entity.PanelResults, Result: res, Scores: res.EmotionScores.Sorted()})

	require.Equal(t, "🎭 Эмоция: Happy\n"+
		"You look happy!\n"+
		"🎯 Уверенность: 92%\n"+
		"👤 Лиц на фото: 1\n"+
		"\n📊 Оценки:\n"+
		"Happy — 92%\n"+
		"Angry — 5%\n"+
		"Sad — 3%", text)
}

func TestFormatStatus(t *testing.T) {
	s := entity.NewSession(1)
	require.Equal(t, "Состояние: 📸 жду фото", formatStatus(s))

	s.Apply(entity.ViewState{Panel: entity.PanelResults, Result: &entity.AnalysisResult{MemeImage: "/y.jpg"}})
	require.Contains(t, formatStatus(s), "✅ показан результат")
	require.Contains(t, formatStatus(s), "/download")
}
