package app

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"meme-bot/internal/domain/entity"
)

// CaptureQuality качество JPEG для снимков с камеры.
const CaptureQuality = 95

// EncodeCapture кодирует кадр в JPEG и оборачивает как camera-capture.jpg.
func EncodeCapture(frame image.Image) (entity.ImagePayload, error) {
	if frame == nil {
		return entity.ImagePayload{}, errors.New("empty frame")
	}
	b := frame.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return entity.ImagePayload{}, fmt.Errorf("empty frame %dx%d", b.Dx(), b.Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame, imaging.JPEG, imaging.JPEGQuality(CaptureQuality)); err != nil {
		return entity.ImagePayload{}, fmt.Errorf("encode jpeg: %w", err)
	}

	return entity.NewImagePayload(entity.CaptureFileName, entity.CaptureMediaType, buf.Bytes()), nil
}
