//go:build !gocv

package camera

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"meme-bot/internal/domain/port"
)

func TestGoCVCamera_StubIsUnavailable(t *testing.T) {
	c := NewGoCVCamera(0)
	s, err := c.Open(context.Background(), port.DefaultCameraConstraints)
	require.Error(t, err)
	require.Nil(t, s)
}

func TestGoCVCamera_DeviceSelectsCamera(t *testing.T) {
	c := NewGoCVCamera(2)
	require.Equal(t, 2, c.Device)
	require.Equal(t, 3, c.WarmFrames)

	back := port.DefaultCameraConstraints
	back.FacingMode = "environment"
	_, err := c.Open(context.Background(), back)
	require.Error(t, err)
}
