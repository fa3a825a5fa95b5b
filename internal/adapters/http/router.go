package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/astroview/astro-gateway/internal/config"
	"github.com/astroview/astro-gateway/internal/core/ports"
	"github.com/astroview/astro-gateway/internal/observability/metrics"
)

// Router assembles the HTTP surface: proxied NASA endpoints, AI analysis
// endpoints and operational endpoints, with per-tier IP rate limits.
type Router struct {
	feed       ports.FeedService
	analyzer   ports.Analyzer
	batch      ports.BatchAnalyzer
	gate       ports.AvailabilityGate
	prober     ports.InferenceProber
	captioner  ports.ImageCaptioner
	summarizer ports.TextSummarizer
	sentiment  ports.SentimentAnalyzer

	metrics *metrics.Metrics
	log     *slog.Logger
	cfg     config.Config
	devMode bool
}

func NewRouter(
	feed ports.FeedService,
	analyzer ports.Analyzer,
	batch ports.BatchAnalyzer,
	gate ports.AvailabilityGate,
	prober ports.InferenceProber,
	captioner ports.ImageCaptioner,
	summarizer ports.TextSummarizer,
	sentiment ports.SentimentAnalyzer,
	m *metrics.Metrics,
	log *slog.Logger,
	cfg config.Config,
) *Router {
	return &Router{
		feed:       feed,
		analyzer:   analyzer,
		batch:      batch,
		gate:       gate,
		prober:     prober,
		captioner:  captioner,
		summarizer: summarizer,
		sentiment:  sentiment,
		metrics:    m,
		log:        log,
		cfg:        cfg,
		devMode:    cfg.DevMode(),
	}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(rt.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if rt.metrics != nil {
		r.Use(func(next http.Handler) http.Handler {
			return rt.metrics.Middleware("astro-gateway", next)
		})
	}

	r.Get("/health", rt.serviceHealth)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rt.rateLimit(rt.cfg.RateLimitGeneral))

		r.Get("/apod", rt.getAPOD)
		r.Get("/apod/random", rt.getRandomAPOD)
		r.Get("/mars/photos", rt.getMarsPhotos)
		r.Get("/mars/rovers/{rover}", rt.getRoverManifest)
		r.Get("/neo", rt.getNEOFeed)
		r.Get("/neo/stats", rt.getNEOStats)
		r.Get("/search", rt.searchLibrary)

		r.Route("/ai", func(r chi.Router) {
			r.Use(rt.rateLimit(rt.cfg.RateLimitAI))

			r.Get("/status", rt.aiStatus)
			r.Get("/health", rt.aiHealth)
			r.Get("/tips", rt.getTips)
			r.Get("/tips/{topic}", rt.getTips)
			r.Post("/text/analyze", rt.analyzeText)
			r.Post("/text/summarize", rt.summarizeText)
			r.Post("/text/sentiment", rt.analyzeSentiment)
			r.Post("/text/complexity", rt.analyzeComplexity)

			// Heavy endpoints fan out to multiple inference calls per
			// request, so they carry the tightest budget.
			r.Group(func(r chi.Router) {
				r.Use(rt.rateLimit(rt.cfg.RateLimitHeavy))

				r.Post("/analyze", rt.analyze)
				r.Post("/batch", rt.analyzeBatch)
				r.Post("/image/analyze", rt.analyzeImage)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success":   false,
			"error":     "Route not found",
			"path":      req.URL.Path,
			"timestamp": timestamp(),
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

func (rt *Router) rateLimit(tier config.RateTier) func(http.Handler) http.Handler {
	return httprate.Limit(
		tier.Requests,
		tier.Window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
		}),
	)
}

func (rt *Router) serviceHealth(w http.ResponseWriter, _ *http.Request) {
	keyMode := "live"
	if rt.cfg.NASADemoMode() {
		keyMode = "demo"
	}
	writeData(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"aiAvailable": rt.gate.Available(),
		"nasaKeyMode": keyMode,
	})
}
