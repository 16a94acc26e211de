package entity

import (
	"bytes"
	"context"
	"io"
	"strings"
)

const (
	// MaxImageSize максимальный размер изображения (16 MiB).
	MaxImageSize = 16 * 1024 * 1024

	CaptureFileName  = "camera-capture.jpg"
	CaptureMediaType = "image/jpeg"
)

var allowedMediaTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/gif":  {},
}

// ImagePayload изображение, готовое к отправке на анализ.
// Тип и размер известны заранее, содержимое открывается лениво.
// Open должен прерываться при отмене ctx.
type ImagePayload struct {
	Name      string
	MediaType string
	Size      int64
	Open      func(ctx context.Context) (io.ReadCloser, error)
}

// NewImagePayload оборачивает байты в ImagePayload.
func NewImagePayload(name, mediaType string, data []byte) ImagePayload {
	return ImagePayload{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Open: func(context.Context) (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Validate проверяет тип и размер изображения.
func (p ImagePayload) Validate() error {
	if !IsAllowedMediaType(p.MediaType) {
		return NewUserError(ErrInvalidType, MsgInvalidType, nil)
	}
	if p.Size > MaxImageSize {
		return NewUserError(ErrTooLarge, MsgTooLarge, nil)
	}
	return nil
}

// IsAllowedMediaType сообщает, поддерживается ли тип изображения.
func IsAllowedMediaType(mediaType string) bool {
	_, ok := allowedMediaTypes[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}
