package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"meme-bot/internal/domain/entity"
	"meme-bot/internal/domain/port"
	"meme-bot/internal/infrastructure/storage"
)

type fakeFrontend struct {
	views map[int64]*fakeView
}

func (f *fakeFrontend) ViewFor(chatID int64) port.View {
	v := &fakeView{}
	f.views[chatID] = v
	return v
}

func (f *fakeFrontend) DownloaderFor(chatID int64) port.Downloader {
	return &fakeDownloader{}
}

func TestSessionService_ControllerPerChat(t *testing.T) {
	repo := storage.NewMemorySessionRepository()
	svc := NewSessionService(repo, &fakeAnalyzer{analyze: succeed}, zerolog.Nop())
	frontend := &fakeFrontend{views: map[int64]*fakeView{}}

	a := svc.Controller(1, frontend)
	require.Same(t, a, svc.Controller(1, frontend))
	require.NotSame(t, a, svc.Controller(2, frontend))
	require.Len(t, frontend.views, 2)
}

func TestSessionService_StatusFollowsRenders(t *testing.T) {
	repo := storage.NewMemorySessionRepository()
	svc := NewSessionService(repo, &fakeAnalyzer{analyze: succeed}, zerolog.Nop())
	frontend := &fakeFrontend{views: map[int64]*fakeView{}}
	ctx := context.Background()

	c := svc.Controller(7, frontend)
	require.NoError(t, c.SelectFile(ctx, pngPayload(10)))

	status, err := svc.Status(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, entity.PanelResults, status.Panel)
	require.Equal(t, "/y.jpg", status.LastMemeURL)
	require.Equal(t, entity.PanelResults, frontend.views[7].last().Panel)

	require.NoError(t, svc.End(ctx, 7))
	status, err = svc.Status(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, entity.PanelUpload, status.Panel)
	require.NotSame(t, c, svc.Controller(7, frontend))
}
