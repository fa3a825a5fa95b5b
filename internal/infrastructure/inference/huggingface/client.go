// Package huggingface adapts the hosted inference API for image
// captioning, summarization and sentiment classification. Every adapter in
// this package degrades to a defined fallback value instead of returning an
// error: inference failures must never surface past the adapter boundary.
package huggingface

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/astroview/astro-gateway/internal/core/domain"
	"github.com/astroview/astro-gateway/internal/observability/metrics"
)

const (
	captionModel   = "Salesforce/blip-image-captioning-large"
	summaryModel   = "facebook/bart-large-cnn"
	sentimentModel = "nlptown/bert-base-multilingual-uncased-sentiment"

	// probeText exercises the sentiment model during health checks.
	probeText = "The Astronomy Picture of the Day showcases stunning cosmic imagery."
)

// Client is the shared transport for all inference adapters. Availability
// is a pure function of token presence: with no token configured, adapters
// skip the network entirely and fall back immediately.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
	metrics    *metrics.Metrics
}

func New(baseURL, token string, timeout time.Duration, log *slog.Logger, m *metrics.Metrics) *Client {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co/models"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
		metrics:    m,
	}
}

func (c *Client) Available() bool {
	return c.token != ""
}

// Probe performs one live sentiment round-trip. Health checks use it to
// distinguish "token configured" from "model actually reachable"; a failed
// round-trip comes back typed as unavailability.
func (c *Client) Probe(ctx context.Context) error {
	var out any
	if err := c.postJSON(ctx, sentimentModel, map[string]any{"inputs": probeText}, &out, "probe"); err != nil {
		return domain.WrapError(domain.ErrUnavailable, "inference probe", err)
	}
	return nil
}

func (c *Client) recordFallback(capability, reason string) {
	if c.metrics != nil {
		c.metrics.RecordInferenceFallback(capability, reason)
	}
}
