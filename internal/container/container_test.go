package container

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"meme-bot/internal/domain/entity"
	"meme-bot/internal/infrastructure/storage"
)

type nopView struct{ last entity.Panel }

func (v *nopView) Render(state entity.ViewState) { v.last = state.Panel }

type nopAnalyzer struct{}

func (nopAnalyzer) Analyze(ctx context.Context, payload entity.ImagePayload) (*entity.AnalysisResult, error) {
	return &entity.AnalysisResult{Emotion: "neutral"}, nil
}

func TestContainer_Wiring(t *testing.T) {
	c := New(storage.NewMemorySessionRepository(), nopAnalyzer{}, zerolog.Nop())
	require.NotNil(t, c.SessionService)

	view := &nopView{}
	ctrl := c.NewController(view, nil, nil)
	require.Equal(t, entity.PanelUpload, view.last)

	require.NoError(t, ctrl.SelectFile(context.Background(), entity.NewImagePayload("a.gif", "image/gif", []byte("GIF89a"))))
	require.Equal(t, entity.PanelResults, view.last)
}
