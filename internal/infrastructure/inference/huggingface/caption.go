package huggingface

import (
	"context"
	"net/http"

	"github.com/astroview/astro-gateway/internal/core/domain"
	"github.com/astroview/astro-gateway/internal/core/ports"
)

const (
	captionTokenMissing = "AI analysis requires API token - please add HF_API_TOKEN to your environment variables"
	captionForbidden    = "AI analysis temporarily unavailable - API key may be invalid"
	captionRateLimited  = "AI analysis temporarily unavailable - rate limit exceeded"
	captionUnavailable  = "AI analysis temporarily unavailable"
	captionEmpty        = "Unable to analyze image"
)

// Captioner fetches image bytes and asks the captioning model to describe
// them. It never fails: every error path resolves to a readable caption.
type Captioner struct {
	client  *Client
	fetcher ports.ImageFetcher
}

func NewCaptioner(client *Client, fetcher ports.ImageFetcher) *Captioner {
	return &Captioner{client: client, fetcher: fetcher}
}

func (c *Captioner) Caption(ctx context.Context, imageURL string) string {
	if !c.client.Available() {
		c.client.recordFallback("caption", "token_missing")
		return captionTokenMissing
	}

	payload, err := c.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		c.client.log.Warn("image fetch failed", "url", imageURL, "error", err)
		c.client.recordFallback("caption", "fetch_failed")
		return fallbackCaption(imageURL)
	}

	var out []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := c.client.postBytes(ctx, captionModel, payload, &out, "caption"); err != nil {
		c.client.log.Warn("caption model call failed", "url", imageURL, "error", err)
		switch domain.UpstreamStatus(err) {
		case http.StatusForbidden:
			c.client.recordFallback("caption", "forbidden")
			return captionForbidden
		case http.StatusTooManyRequests:
			c.client.recordFallback("caption", "rate_limited")
			return captionRateLimited
		}
		c.client.recordFallback("caption", "model_failed")
		return fallbackCaption(imageURL)
	}

	if len(out) == 0 || out[0].GeneratedText == "" {
		c.client.recordFallback("caption", "empty_response")
		return captionEmpty
	}
	return out[0].GeneratedText
}
