package huggingface

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

// SentimentAnalyzer classifies text with a star-rating sentiment model and
// maps star labels onto the closed POSITIVE/NEGATIVE/NEUTRAL set. On any
// failure it returns the neutral sentiment, never an error.
type SentimentAnalyzer struct {
	client *Client
}

func NewSentimentAnalyzer(client *Client) *SentimentAnalyzer {
	return &SentimentAnalyzer{client: client}
}

type sentimentEntry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (s *SentimentAnalyzer) Analyze(ctx context.Context, text string) domain.Sentiment {
	if !s.client.Available() {
		s.client.recordFallback("sentiment", "token_missing")
		return domain.NeutralSentiment()
	}

	var raw json.RawMessage
	if err := s.client.postJSON(ctx, sentimentModel, map[string]any{"inputs": text}, &raw, "sentiment"); err != nil {
		s.client.log.Warn("sentiment model call failed", "error", err)
		s.client.recordFallback("sentiment", "model_failed")
		return domain.NeutralSentiment()
	}

	entries, err := normalizeSentimentShape(raw)
	if err != nil {
		s.client.log.Error("unrecognized sentiment response shape", "error", err)
		s.client.recordFallback("sentiment", "bad_shape")
		return domain.NeutralSentiment()
	}
	if len(entries) == 0 {
		s.client.recordFallback("sentiment", "empty_response")
		return domain.NeutralSentiment()
	}

	best := entries[0]
	for _, entry := range entries[1:] {
		if entry.Score > best.Score {
			best = entry
		}
	}
	return domain.Sentiment{Label: starLabel(best.Label), Score: best.Score}
}

// normalizeSentimentShape accepts the two shapes the model is known to
// return: a flat entry array and a nested one-element array of entry
// arrays. Anything else is an error, not a guess.
func normalizeSentimentShape(raw json.RawMessage) ([]sentimentEntry, error) {
	var flat []sentimentEntry
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}
	var nested [][]sentimentEntry
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 {
			return nil, nil
		}
		return nested[0], nil
	}
	return nil, fmt.Errorf("sentiment response matches no known shape: %s", truncate(string(raw), 256))
}

// starLabel maps the model's star-rating labels onto the closed label set.
func starLabel(label string) domain.SentimentLabel {
	switch {
	case strings.Contains(label, "4 stars"), strings.Contains(label, "5 stars"):
		return domain.SentimentPositive
	case strings.Contains(label, "1 star"), strings.Contains(label, "2 stars"):
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
