package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"meme-bot/internal/domain/entity"
)

func TestMemorySessionRepository_GetCreatesSession(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, int64(42), s.ChatID)
	require.Equal(t, entity.PanelUpload, s.Panel)
}

func TestMemorySessionRepository_SaveAndDelete(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	s, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	s.Apply(entity.ViewState{Panel: entity.PanelResults, Result: &entity.AnalysisResult{MemeImage: "/m.jpg"}})
	require.NoError(t, repo.Save(ctx, s))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.PanelResults, got.Panel)
	require.Equal(t, "/m.jpg", got.LastMemeURL)

	// Изменение копии не влияет на хранилище.
	got.Panel = entity.PanelError
	again, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.PanelResults, again.Panel)

	require.NoError(t, repo.Delete(ctx, 1))
	fresh, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, entity.PanelUpload, fresh.Panel)
	require.Empty(t, fresh.LastMemeURL)
}
