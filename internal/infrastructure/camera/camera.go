//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"meme-bot/internal/domain/port"
)

// GoCVCamera камера через OpenCV VideoCapture.
// Устройство выбирается только по Device, FacingMode из ограничений игнорируется.
type GoCVCamera struct {
	Device     int
	WarmFrames int // кадры, которые пропускаются после открытия
}

// NewGoCVCamera создаёт камеру для устройства с номером device.
func NewGoCVCamera(device int) *GoCVCamera {
	return &GoCVCamera{
		Device:     device,
		WarmFrames: 3,
	}
}

// Open открывает устройство и просит желаемое разрешение.
func (c *GoCVCamera) Open(ctx context.Context, constraints port.CameraConstraints) (port.CameraSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vc, err := gocv.OpenVideoCapture(c.Device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", c.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", c.Device)
	}

	// Разрешение — пожелание: устройство может выбрать ближайшее.
	if constraints.Width > 0 {
		vc.Set(gocv.VideoCaptureFrameWidth, float64(constraints.Width))
	}
	if constraints.Height > 0 {
		vc.Set(gocv.VideoCaptureFrameHeight, float64(constraints.Height))
	}

	s := &session{vc: vc, frame: gocv.NewMat()}

	// Первые кадры у многих камер тёмные, пока не отработает экспозиция.
	for i := 0; i < c.WarmFrames; i++ {
		if ctx.Err() != nil {
			s.Stop()
			return nil, ctx.Err()
		}
		vc.Read(&s.frame)
	}

	return s, nil
}

type session struct {
	mu      sync.Mutex
	vc      *gocv.VideoCapture
	frame   gocv.Mat
	stopped bool
}

// Frame читает текущий кадр в родном разрешении устройства.
func (s *session) Frame() (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, errors.New("camera session is stopped")
	}
	if ok := s.vc.Read(&s.frame); !ok || s.frame.Empty() {
		return nil, errors.New("failed to read camera frame")
	}

	img, err := s.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return img, nil
}

// Stop освобождает устройство. Повторный вызов ничего не делает.
func (s *session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.frame.Close()
	s.vc.Close()
}

var _ port.Camera = (*GoCVCamera)(nil)
