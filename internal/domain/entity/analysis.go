package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// AnalysisResult ответ сервиса анализа эмоций.
type AnalysisResult struct {
	Emotion            string        `json:"emotion"`
	EmotionDescription string        `json:"emotion_description"`
	Confidence         float64       `json:"confidence"`
	FaceCount          int           `json:"face_count"`
	EmotionScores      EmotionScores `json:"emotion_scores"`
	OriginalImage      string        `json:"original_image"`
	MemeImage          string        `json:"meme_image"`
}

// EmotionScore оценка одной эмоции в процентах.
type EmotionScore struct {
	Emotion string
	Score   float64
}

// Percent форматирует оценку как "92%".
func (s EmotionScore) Percent() string {
	return strconv.FormatFloat(s.Score, 'f', -1, 64) + "%"
}

// EmotionScores оценки в порядке ключей JSON-объекта.
type EmotionScores []EmotionScore

// UnmarshalJSON разбирает объект {label: number}, сохраняя порядок ключей.
func (s *EmotionScores) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("emotion_scores: expected object, got %v", tok)
	}

	scores := make(EmotionScores, 0, 8)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var score float64
		if err := dec.Decode(&score); err != nil {
			return fmt.Errorf("emotion_scores[%q]: %w", key, err)
		}
		scores = append(scores, EmotionScore{Emotion: key, Score: score})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = scores
	return nil
}

// Sorted возвращает копию, отсортированную по убыванию оценки.
// При равенстве сохраняется исходный порядок.
func (s EmotionScores) Sorted() []EmotionScore {
	sorted := make([]EmotionScore, len(s))
	copy(sorted, s)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})
	return sorted
}
