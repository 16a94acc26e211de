package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession_DefaultPanel(t *testing.T) {
	s := NewSession(10)
	require.Equal(t, PanelUpload, s.Panel)
	require.Equal(t, int64(10), s.ChatID)
}

func TestSessionApply_KeepsLastMeme(t *testing.T) {
	s := NewSession(10)
	s.Apply(ViewState{Panel: PanelResults, Result: &AnalysisResult{MemeImage: "/y.jpg"}})
	require.Equal(t, "/y.jpg", s.LastMemeURL)

	s.Apply(ViewState{Panel: PanelUpload})
	require.Equal(t, PanelUpload, s.Panel)
	require.Equal(t, "/y.jpg", s.LastMemeURL)
}
