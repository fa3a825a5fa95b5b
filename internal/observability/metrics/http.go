package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry covering the HTTP surface, upstream
// proxy calls, inference degradation and batch throughput.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	upstreamRequests   *prometheus.CounterVec
	upstreamDuration   *prometheus.HistogramVec
	inferenceFallbacks *prometheus.CounterVec
	analysisDuration   *prometheus.HistogramVec
	batchItemsTotal    *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astro",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "astro",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "astro",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	upstreamRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astro",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Total third-party API calls by outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)
	upstreamDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "astro",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Third-party API call duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)
	inferenceFallbacks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astro",
			Subsystem: "inference",
			Name:      "fallbacks_total",
			Help:      "Total inference calls that degraded to a fallback value.",
		},
		[]string{"capability", "reason"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "astro",
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Comprehensive analysis duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "kind"},
	)
	batchItemsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "astro",
			Subsystem: "analysis",
			Name:      "batch_items_total",
			Help:      "Total batch items by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		upstreamRequests,
		upstreamDuration,
		inferenceFallbacks,
		analysisDuration,
		batchItemsTotal,
	)

	return &Metrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		upstreamRequests:   upstreamRequests,
		upstreamDuration:   upstreamDuration,
		inferenceFallbacks: inferenceFallbacks,
		analysisDuration:   analysisDuration,
		batchItemsTotal:    batchItemsTotal,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath collapses parameterized routes to keep label cardinality
// bounded.
func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/mars/rovers/"):
		return "/api/mars/rovers/{rover}"
	case strings.HasPrefix(path, "/api/ai/tips/"):
		return "/api/ai/tips/{topic}"
	default:
		return path
	}
}

func (m *Metrics) RecordUpstreamRequest(service, operation, outcome string, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.upstreamRequests.WithLabelValues(service, operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordInferenceFallback(capability, reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.inferenceFallbacks.WithLabelValues(capability, reason).Inc()
}

func (m *Metrics) RecordAnalysis(service, kind string, duration time.Duration) {
	m.analysisDuration.WithLabelValues(service, kind).Observe(duration.Seconds())
}

func (m *Metrics) RecordBatchItems(service string, successful, failed int) {
	if successful > 0 {
		m.batchItemsTotal.WithLabelValues(service, "success").Add(float64(successful))
	}
	if failed > 0 {
		m.batchItemsTotal.WithLabelValues(service, "failure").Add(float64(failed))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
