package download

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileDownloader_SavesUnderName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/static/memes/m.jpg", r.URL.Path)
		_, _ = io.WriteString(w, "jpeg-bytes")
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "out")
	d := NewFileDownloader(dir, srv.Client())

	require.NoError(t, d.Download(context.Background(), srv.URL+"/static/memes/m.jpg", "my-meme.jpg"))

	data, err := os.ReadFile(filepath.Join(dir, "my-meme.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg-bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Fetch(context.Background(), nil, srv.URL+"/missing.jpg")
	require.Error(t, err)
}

func TestFileDownloader_FailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	d := NewFileDownloader(dir, nil)
	require.Error(t, d.Download(context.Background(), srv.URL+"/m.jpg", "my-meme.jpg"))

	_, err := os.Stat(filepath.Join(dir, "my-meme.jpg"))
	require.True(t, os.IsNotExist(err))
}
