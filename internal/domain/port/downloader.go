package port

import "context"

// Downloader отдаёт пользователю файл по ссылке
type Downloader interface {
	Download(ctx context.Context, url, name string) error
}
