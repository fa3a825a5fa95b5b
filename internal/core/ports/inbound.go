package ports

import (
	"context"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

// Analyzer is the inbound contract for comprehensive analysis.
type Analyzer interface {
	Perform(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
}

// BatchAnalyzer runs up to ten independent analysis bundles concurrently
// with per-item failure isolation.
type BatchAnalyzer interface {
	Batch(ctx context.Context, items []domain.AnalysisRequest) (*domain.BatchReport, error)
}

// FeedService is the inbound contract for proxied NASA data, optionally
// decorated with analysis results.
type FeedService interface {
	APOD(ctx context.Context, date string) (any, error)
	RandomAPOD(ctx context.Context) (any, error)
	MarsPhotos(ctx context.Context, rover string, sol, page int) (any, error)
	RoverManifest(ctx context.Context, rover string) (any, error)
	NEOFeed(ctx context.Context, startDate, endDate string) (any, error)
	NEOStats(ctx context.Context, startDate, endDate string) (*domain.NEOStats, error)
	SearchLibrary(ctx context.Context, query, mediaType string) (any, error)
}
