package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"meme-bot/internal/domain/entity"
)

// formatResult собирает подпись к мему.
func formatResult(state entity.ViewState) string {
	res := state.Result
	var sb strings.Builder

	fmt.Fprintf(&sb, "🎭 Эмоция: %s\n", res.Emotion)
	if res.EmotionDescription != "" {
		sb.WriteString(res.EmotionDescription)
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "🎯 Уверенность: %s%%\n", strconv.FormatFloat(res.Confidence, 'f', -1, 64))
	fmt.Fprintf(&sb, "👤 Лиц на фото: %d\n", res.FaceCount)

	if len(state.Scores) > 0 {
		sb.WriteString("\n📊 Оценки:\n")
		for _, s := range state.Scores {
			fmt.Fprintf(&sb, "%s — %s\n", s.Emotion, s.Percent())
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatStatus описывает состояние чата.
func formatStatus(s *entity.Session) string {
	var panel string
	switch s.Panel {
	case entity.PanelLoading:
		panel = "⏳ идёт анализ"
	case entity.PanelResults:
		panel = "✅ показан результат"
	case entity.PanelError:
		panel = "⚠️ ошибка"
	default:
		panel = "📸 жду фото"
	}

	text := "Состояние: " + panel
	if s.LastMemeURL != "" {
		text += "\nПоследний мем: /download"
	}
	return text
}
