package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"meme-bot/internal/domain/port"
)

// Fetch скачивает файл по ссылке целиком.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// FileDownloader сохраняет скачанные файлы в каталог.
type FileDownloader struct {
	Dir    string
	Client *http.Client
}

// NewFileDownloader создаёт загрузчик в каталог dir.
func NewFileDownloader(dir string, client *http.Client) *FileDownloader {
	return &FileDownloader{Dir: dir, Client: client}
}

// Download скачивает url и сохраняет под именем name.
// Файл сначала пишется во временный и затем переименовывается.
func (d *FileDownloader) Download(ctx context.Context, url, name string) error {
	data, err := Fetch(ctx, d.Client, url)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(d.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}

	dst := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}

	log.Info().Str("url", url).Str("path", dst).Int("bytes", len(data)).Msg("file downloaded")
	return nil
}

var _ port.Downloader = (*FileDownloader)(nil)
