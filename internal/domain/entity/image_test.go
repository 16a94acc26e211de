package entity

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImagePayloadValidate(t *testing.T) {
	cases := []struct {
		name      string
		mediaType string
		size      int64
		kind      error
	}{
		{"png", "image/png", 10 * 1024, nil},
		{"jpeg", "image/jpeg", 1, nil},
		{"jpg", "image/jpg", 1, nil},
		{"gif upper case", "IMAGE/GIF", 1, nil},
		{"exact limit", "image/png", MaxImageSize, nil},
		{"webp", "image/webp", 1, ErrInvalidType},
		{"pdf", "application/pdf", 1, ErrInvalidType},
		{"empty type", "", 1, ErrInvalidType},
		{"over limit", "image/png", MaxImageSize + 1, ErrTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ImagePayload{Name: "f", MediaType: tc.mediaType, Size: tc.size}
			err := p.Validate()
			if tc.kind == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestNewImagePayload(t *testing.T) {
	p := NewImagePayload("a.png", "image/png", []byte("abc"))
	require.Equal(t, int64(3), p.Size)

	rc, err := p.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "abc", string(data))
}

func TestUserError(t *testing.T) {
	cause := errors.New("boom")
	err := NewUserError(ErrUploadFailed, "No face detected", cause)

	require.ErrorIs(t, err, ErrUploadFailed)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "No face detected", UserMessage(err))
	require.Equal(t, MsgUploadFailed, UserMessage(cause))
}
