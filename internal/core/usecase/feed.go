package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/astroview/astro-gateway/internal/core/domain"
	"github.com/astroview/astro-gateway/internal/core/ports"
)

// aiAnalysisField is attached to proxied NASA payloads when the inference
// gate is open. Enrichment failures degrade the field, never the payload.
const aiAnalysisField = "aiAnalysis"

// FeedUseCase proxies NASA data and decorates it with analysis results.
type FeedUseCase struct {
	nasa     ports.NASAGateway
	analyzer ports.Analyzer
	gate     ports.AvailabilityGate
	log      *slog.Logger
}

func NewFeedUseCase(
	nasa ports.NASAGateway,
	analyzer ports.Analyzer,
	gate ports.AvailabilityGate,
	log *slog.Logger,
) *FeedUseCase {
	return &FeedUseCase{nasa: nasa, analyzer: analyzer, gate: gate, log: log}
}

func (uc *FeedUseCase) APOD(ctx context.Context, date string) (any, error) {
	raw, err := uc.nasa.APOD(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetch apod: %w", err)
	}

	if !uc.gate.Available() {
		return raw, nil
	}

	payload, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode apod payload: %w", err)
	}
	analysis, err := uc.analyzer.Perform(ctx, domain.AnalysisRequest{
		ImageURL: stringField(payload, "url"),
		Text:     stringField(payload, "explanation"),
		Topic:    stringField(payload, "title"),
	})
	if err != nil {
		uc.log.Warn("apod analysis failed", "error", err)
		payload[aiAnalysisField] = map[string]string{
			"error":     "AI analysis temporarily unavailable",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		return payload, nil
	}
	payload[aiAnalysisField] = analysis
	return payload, nil
}

func (uc *FeedUseCase) RandomAPOD(ctx context.Context) (any, error) {
	// Uniform random date within the last 365 days.
	date := time.Now().UTC().AddDate(0, 0, -rand.IntN(365)).Format("2006-01-02")
	return uc.APOD(ctx, date)
}

func (uc *FeedUseCase) MarsPhotos(ctx context.Context, rover string, sol, page int) (any, error) {
	raw, err := uc.nasa.MarsPhotos(ctx, rover, sol, page)
	if err != nil {
		return nil, fmt.Errorf("fetch mars photos: %w", err)
	}

	if !uc.gate.Available() {
		return raw, nil
	}

	payload, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode mars payload: %w", err)
	}
	photos, _ := payload["photos"].([]any)
	if len(photos) == 0 {
		return payload, nil
	}
	first, _ := photos[0].(map[string]any)

	// Only the first photo is analyzed to stay inside inference quotas.
	analysis, err := uc.analyzer.Perform(ctx, domain.AnalysisRequest{
		ImageURL: stringField(first, "img_src"),
		Topic:    fmt.Sprintf("Mars %s rover", rover),
	})
	if err != nil {
		uc.log.Warn("mars photo analysis failed", "rover", rover, "error", err)
		return payload, nil
	}
	payload[aiAnalysisField] = analysis
	return payload, nil
}

func (uc *FeedUseCase) RoverManifest(ctx context.Context, rover string) (any, error) {
	raw, err := uc.nasa.RoverManifest(ctx, rover)
	if err != nil {
		return nil, fmt.Errorf("fetch rover manifest: %w", err)
	}
	return raw, nil
}

func (uc *FeedUseCase) NEOFeed(ctx context.Context, startDate, endDate string) (any, error) {
	raw, err := uc.nasa.NEOFeed(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("fetch neo feed: %w", err)
	}

	if !uc.gate.Available() {
		return raw, nil
	}

	payload, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode neo payload: %w", err)
	}
	count := 0
	if n, ok := payload["element_count"].(float64); ok {
		count = int(n)
	}
	analysis, err := uc.analyzer.Perform(ctx, domain.AnalysisRequest{
		Text:  fmt.Sprintf("Near Earth Objects data for %s to %s. Found %d objects.", startDate, endDate, count),
		Topic: "near earth objects asteroids",
	})
	if err != nil {
		uc.log.Warn("neo analysis failed", "error", err)
		return payload, nil
	}
	payload[aiAnalysisField] = analysis
	return payload, nil
}

func (uc *FeedUseCase) NEOStats(ctx context.Context, startDate, endDate string) (*domain.NEOStats, error) {
	raw, err := uc.nasa.NEOFeed(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("fetch neo feed: %w", err)
	}

	var feed domain.NEOFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("decode neo feed: %w", err)
	}
	stats := AggregateNEOStats(feed)
	return &stats, nil
}

func (uc *FeedUseCase) SearchLibrary(ctx context.Context, query, mediaType string) (any, error) {
	raw, err := uc.nasa.SearchLibrary(ctx, query, mediaType)
	if err != nil {
		return nil, fmt.Errorf("search library: %w", err)
	}

	if !uc.gate.Available() {
		return raw, nil
	}

	payload, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode search payload: %w", err)
	}
	text := firstSearchItemText(payload)
	if text == "" {
		return payload, nil
	}
	analysis, err := uc.analyzer.Perform(ctx, domain.AnalysisRequest{Text: text, Topic: query})
	if err != nil {
		uc.log.Warn("library search analysis failed", "query", query, "error", err)
		return payload, nil
	}
	payload[aiAnalysisField] = analysis
	return payload, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

// firstSearchItemText pulls the description (or title) of the first search
// hit out of the library's collection envelope.
func firstSearchItemText(payload map[string]any) string {
	collection, _ := payload["collection"].(map[string]any)
	items, _ := collection["items"].([]any)
	if len(items) == 0 {
		return ""
	}
	first, _ := items[0].(map[string]any)
	data, _ := first["data"].([]any)
	if len(data) == 0 {
		return ""
	}
	entry, _ := data[0].(map[string]any)
	if description := stringField(entry, "description"); description != "" {
		return description
	}
	return stringField(entry, "title")
}
