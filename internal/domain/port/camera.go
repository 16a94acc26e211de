package port

import (
	"context"
	"image"
)

// CameraConstraints желаемые параметры захвата
type CameraConstraints struct {
	FacingMode string // "user" — фронтальная камера
	Width      int    // желаемая ширина
	Height     int    // желаемая высота
}

// DefaultCameraConstraints фронтальная камера 1280×720.
var DefaultCameraConstraints = CameraConstraints{FacingMode: "user", Width: 1280, Height: 720}

// Camera источник живого видео
type Camera interface {
	// Open запрашивает доступ к камере и запускает захват
	Open(ctx context.Context, constraints CameraConstraints) (CameraSession, error)
}

// CameraSession активный захват видео
type CameraSession interface {
	// Frame возвращает текущий кадр в родном разрешении
	Frame() (image.Image, error)

	// Stop останавливает все дорожки захвата
	Stop()
}
