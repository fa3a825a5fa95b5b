package ports

import (
	"context"
	"encoding/json"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

// AvailabilityGate reports whether inference-backed capabilities may be
// attempted. Pure, no side effects; false means every dependent step must
// fall back without touching the network.
type AvailabilityGate interface {
	Available() bool
}

// ImageCaptioner describes an image. It never fails: any error on the way
// (missing token, fetch failure, model failure) degrades into a
// human-readable fallback caption.
type ImageCaptioner interface {
	Caption(ctx context.Context, imageURL string) string
}

// TextSummarizer condenses text to roughly maxLength characters. Fail-open:
// the returned string is never less information than the input. The bool
// reports whether an actual summary was produced.
type TextSummarizer interface {
	Summarize(ctx context.Context, text string, maxLength int) (string, bool)
}

// SentimentAnalyzer classifies text into POSITIVE/NEGATIVE/NEUTRAL. Every
// failure path yields exactly the neutral fallback.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) domain.Sentiment
}

// InferenceProber performs one live inference round-trip and reports its
// raw error, for health checks only.
type InferenceProber interface {
	Probe(ctx context.Context) error
}

// ImageFetcher downloads raw image bytes with a bounded timeout.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// NASAGateway proxies the public NASA REST endpoints. Bodies are returned
// unparsed so proxy handlers can pass them through unchanged.
type NASAGateway interface {
	APOD(ctx context.Context, date string) (json.RawMessage, error)
	MarsPhotos(ctx context.Context, rover string, sol, page int) (json.RawMessage, error)
	RoverManifest(ctx context.Context, rover string) (json.RawMessage, error)
	NEOFeed(ctx context.Context, startDate, endDate string) (json.RawMessage, error)
	SearchLibrary(ctx context.Context, query, mediaType string) (json.RawMessage, error)
}
