package bootstrap

import (
	"log/slog"

	"github.com/astroview/astro-gateway/internal/config"
	"github.com/astroview/astro-gateway/internal/core/ports"
	"github.com/astroview/astro-gateway/internal/core/usecase"
	"github.com/astroview/astro-gateway/internal/infrastructure/imagefetch"
	"github.com/astroview/astro-gateway/internal/infrastructure/inference/huggingface"
	"github.com/astroview/astro-gateway/internal/infrastructure/nasa"
	"github.com/astroview/astro-gateway/internal/infrastructure/resilience"
	"github.com/astroview/astro-gateway/internal/observability/logging"
	"github.com/astroview/astro-gateway/internal/observability/metrics"
)

// App owns the wired object graph: one shared client per upstream, the
// use cases on top and the ports the HTTP layer consumes.
type App struct {
	Config  config.Config
	Log     *slog.Logger
	Metrics *metrics.Metrics

	Feed       ports.FeedService
	Analyzer   ports.Analyzer
	Batch      ports.BatchAnalyzer
	Gate       ports.AvailabilityGate
	Prober     ports.InferenceProber
	Captioner  ports.ImageCaptioner
	Summarizer ports.TextSummarizer
	Sentiment  ports.SentimentAnalyzer
}

func New(cfg config.Config) (*App, error) {
	log := logging.New("astro-gateway", cfg.LogLevel)
	m := metrics.New("astro-gateway")

	inferenceClient := huggingface.New(cfg.InferenceBaseURL, cfg.HFAPIToken, cfg.InferenceTimeout, log, m)
	fetcher := imagefetch.New(cfg.NASATimeout)

	captioner := huggingface.NewCaptioner(inferenceClient, fetcher)
	summarizer := huggingface.NewSummarizer(inferenceClient)
	sentiment := huggingface.NewSentimentAnalyzer(inferenceClient)

	nasaClient := nasa.New(nasa.Options{
		BaseURL:       cfg.NASABaseURL,
		ImagesBaseURL: cfg.NASAImagesBaseURL,
		APIKey:        cfg.NASAAPIKey,
		Timeout:       cfg.NASATimeout,
		LimitRPS:      cfg.NASALimitRPS,
		LimitBurst:    cfg.NASALimitBurst,
		Resilience: resilience.Config{
			BreakerEnabled:          true,
			BreakerMinRequests:      cfg.BreakerMinRequests,
			BreakerFailureRatio:     cfg.BreakerFailureRatio,
			BreakerOpenTimeout:      cfg.BreakerOpenTimeout,
			BreakerHalfOpenMaxCalls: cfg.BreakerHalfOpenMaxCalls,
		},
		Metrics: m,
	})
	if nasaClient.DemoMode() {
		log.Warn("running on the public NASA demo key, upstream quotas are tight")
	}

	analysisUC := usecase.NewAnalysisUseCase(captioner, summarizer, sentiment)
	feedUC := usecase.NewFeedUseCase(nasaClient, analysisUC, inferenceClient, log)

	return &App{
		Config:  cfg,
		Log:     log,
		Metrics: m,

		Feed:       feedUC,
		Analyzer:   analysisUC,
		Batch:      analysisUC,
		Gate:       inferenceClient,
		Prober:     inferenceClient,
		Captioner:  captioner,
		Summarizer: summarizer,
		Sentiment:  sentiment,
	}, nil
}
