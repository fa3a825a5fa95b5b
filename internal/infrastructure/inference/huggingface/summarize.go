package huggingface

import "context"

const summaryMinLength = 20

// Summarizer condenses text with the hosted summarization model. It fails
// open: any failure returns the original text with summarized=false.
type Summarizer struct {
	client *Client
}

func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, text string, maxLength int) (string, bool) {
	if len(text) < maxLength {
		return text, false
	}
	if !s.client.Available() {
		s.client.recordFallback("summarize", "token_missing")
		return text, false
	}

	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"max_length": maxLength,
			"min_length": summaryMinLength,
		},
	}
	var out []struct {
		SummaryText string `json:"summary_text"`
	}
	if err := s.client.postJSON(ctx, summaryModel, payload, &out, "summarize"); err != nil {
		s.client.log.Warn("summarize model call failed", "error", err)
		s.client.recordFallback("summarize", "model_failed")
		return text, false
	}
	if len(out) == 0 || out[0].SummaryText == "" {
		s.client.recordFallback("summarize", "empty_response")
		return text, false
	}
	return out[0].SummaryText, true
}
