package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"meme-bot/internal/domain/entity"
)

func TestTerminalView_Results(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf, true)

	res := &entity.AnalysisResult{
		Emotion:    "Happy",
		Confidence: 92,
		FaceCount:  1,
		EmotionScores: entity.EmotionScores{
			{Emotion: "Happy", Score: 92},
			{Emotion: "Sad", Score: 3},
			{Emotion: "Angry", Score: 5},
		},
		OriginalImage: "http://localhost:5001/x.jpg",
		MemeImage:     "http://localhost:5001/y.jpg",
	}
	v.Render(entity.ViewState{Panel: entity.PanelResults, Result: res, Scores: res.EmotionScores.Sorted()})

	out := buf.String()
	require.Contains(t, out, "Confidence:  92%")
	require.Contains(t, out, "Faces:       1")
	require.Contains(t, out, "Meme:        http://localhost:5001/y.jpg")

	happy := strings.Index(out, "Happy ")
	angry := strings.Index(out, "Angry ")
	sad := strings.Index(out, "Sad ")
	require.True(t, happy < angry && angry < sad, out)
	require.Contains(t, out, "5%\n")
}

func TestTerminalView_Error(t *testing.T) {
	var buf bytes.Buffer
	NewTerminalView(&buf, true).Render(entity.ViewState{Panel: entity.PanelError, Message: "No face detected"})
	require.Equal(t, "Error: No face detected\n", buf.String())
}

func TestBar(t *testing.T) {
	require.Equal(t, strings.Repeat("█", 20), bar(100))
	require.Equal(t, strings.Repeat("·", 20), bar(0))
	require.Equal(t, strings.Repeat("█", 10)+strings.Repeat("·", 10), bar(50))
	require.Equal(t, strings.Repeat("█", 20), bar(140))
}
