//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"errors"

	"meme-bot/internal/domain/port"
)

// GoCVCamera камера через OpenCV VideoCapture. В сборке без тега gocv
// любая попытка открыть её возвращает ошибку.
// Устройство выбирается только по Device, FacingMode из ограничений игнорируется.
type GoCVCamera struct {
	Device     int
	WarmFrames int
}

// NewGoCVCamera создаёт камеру-заглушку (без OpenCV).
func NewGoCVCamera(device int) *GoCVCamera {
	return &GoCVCamera{
		Device:     device,
		WarmFrames: 3,
	}
}

// Open возвращает ошибку, если сборка без тега gocv.
func (c *GoCVCamera) Open(ctx context.Context, constraints port.CameraConstraints) (port.CameraSession, error) {
	_ = ctx
	_ = constraints
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.Camera = (*GoCVCamera)(nil)
