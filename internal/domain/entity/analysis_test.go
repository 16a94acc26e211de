package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmotionScores_PreservesOrder(t *testing.T) {
	var res AnalysisResult
	err := json.Unmarshal([]byte(`{
		"emotion": "Happy",
		"confidence": 92,
		"face_count": 1,
		"emotion_scores": {"Happy": 92, "Sad": 3, "Angry": 5},
		"original_image": "/x.jpg",
		"meme_image": "/y.jpg"
	}`), &res)
	require.NoError(t, err)

	require.Equal(t, EmotionScores{
		{Emotion: "Happy", Score: 92},
		{Emotion: "Sad", Score: 3},
		{Emotion: "Angry", Score: 5},
	}, res.EmotionScores)
	require.Equal(t, 1, res.FaceCount)
	require.Equal(t, "/y.jpg", res.MemeImage)
}

func TestEmotionScores_SortedDescending(t *testing.T) {
	scores := EmotionScores{
		{Emotion: "Happy", Score: 92},
		{Emotion: "Sad", Score: 3},
		{Emotion: "Angry", Score: 5},
	}

	sorted := scores.Sorted()
	require.Equal(t, []string{"Happy", "Angry", "Sad"}, emotions(sorted))
	require.Equal(t, "92%", sorted[0].Percent())
	require.Equal(t, "Happy", scores[0].Emotion)
	require.Equal(t, "Sad", scores[1].Emotion)
}

func TestEmotionScores_SortedKeepsTieOrder(t *testing.T) {
	var scores EmotionScores
	err := json.Unmarshal([]byte(`{"fear": 10, "neutral": 40, "disgust": 10, "sad": 10}`), &scores)
	require.NoError(t, err)

	require.Equal(t, []string{"neutral", "fear", "disgust", "sad"}, emotions(scores.Sorted()))
}

func TestEmotionScores_RejectsNonObject(t *testing.T) {
	var scores EmotionScores
	require.Error(t, json.Unmarshal([]byte(`[1, 2]`), &scores))
	require.NoError(t, json.Unmarshal([]byte(`null`), &scores))
	require.Nil(t, scores)
}

func TestEmotionScorePercent(t *testing.T) {
	require.Equal(t, "12.57%", EmotionScore{Score: 12.57}.Percent())
	require.Equal(t, "0%", EmotionScore{}.Percent())
}

func emotions(scores []EmotionScore) []string {
	out := make([]string, 0, len(scores))
	for _, s := range scores {
		out = append(out, s.Emotion)
	}
	return out
}
