package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/astroview/astro-gateway/internal/core/domain"
	"github.com/astroview/astro-gateway/internal/core/usecase"
)

const (
	defaultTipCount      = 3
	defaultSummaryLength = 150
	minSummaryInput      = 20

	// summarizeWorthwhile mirrors the orchestrator threshold: shorter text
	// keeps a null summary instead of a round-trip.
	summarizeWorthwhile = 200

	healthProbeTimeout = 5 * time.Second
)

func (rt *Router) aiStatus(w http.ResponseWriter, _ *http.Request) {
	available := rt.gate.Available()
	message := "AI services are available"
	if !available {
		message = "AI services require HF_API_TOKEN environment variable"
	}
	writeData(w, http.StatusOK, map[string]any{
		"available": available,
		"message":   message,
		"services": map[string]bool{
			"imageAnalysis":     available,
			"textSummarization": available,
			"sentimentAnalysis": available,
			"textComplexity":    true,
			"astronomyTips":     true,
		},
	})
}

// aiHealth performs one live inference round-trip so "token configured" and
// "models reachable" stay distinguishable.
func (rt *Router) aiHealth(w http.ResponseWriter, r *http.Request) {
	if !rt.gate.Available() {
		writeError(w, http.StatusServiceUnavailable, "AI services not configured: missing API token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	start := time.Now()
	if err := rt.prober.Probe(ctx); err != nil {
		rt.log.Warn("inference health probe failed", "error", err)
		message := "AI health check failed"
		if domain.IsKind(err, domain.ErrUnavailable) {
			message = "AI services degraded: inference probe failed"
		}
		writeError(w, http.StatusServiceUnavailable, message)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"status":    "operational",
		"probeMs":   time.Since(start).Milliseconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type analyzeRequest struct {
	ImageURL string `json:"imageUrl"`
	Text     string `json:"text"`
	Topic    string `json:"topic"`
}

func (req analyzeRequest) toDomain() domain.AnalysisRequest {
	return domain.AnalysisRequest{ImageURL: req.ImageURL, Text: req.Text, Topic: req.Topic}
}

func (rt *Router) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	bundle := req.toDomain()
	if bundle.Empty() {
		writeError(w, http.StatusBadRequest, "At least one of imageUrl, text, or topic is required")
		return
	}

	start := time.Now()
	result, err := rt.analyzer.Perform(r.Context(), bundle)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis("astro-gateway", "analyze", time.Since(start))
	}
	writeData(w, http.StatusOK, result)
}

func (rt *Router) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []analyzeRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	items := make([]domain.AnalysisRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toDomain()
	}

	start := time.Now()
	report, err := rt.batch.Batch(r.Context(), items)
	if err != nil {
		rt.respondUpstreamError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordAnalysis("astro-gateway", "batch", time.Since(start))
		rt.metrics.RecordBatchItems("astro-gateway", report.Summary.Successful, report.Summary.Failed)
	}
	writeData(w, http.StatusOK, report)
}

func (rt *Router) analyzeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "Image URL is required")
		return
	}

	caption := rt.captioner.Caption(r.Context(), req.ImageURL)
	writeData(w, http.StatusOK, map[string]any{
		"imageUrl": req.ImageURL,
		"analysis": caption,
	})
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text             string `json:"text"`
		Summarize        *bool  `json:"summarize"`
		MaxSummaryLength int    `json:"maxSummaryLength"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}
	if req.MaxSummaryLength <= 0 {
		req.MaxSummaryLength = defaultSummaryLength
	}
	wantSummary := req.Summarize == nil || *req.Summarize

	// Complexity is local and cheap; sentiment and the optional summary go
	// over the wire, so the branches run independently.
	stats := usecase.AnalyzeTextComplexity(req.Text)

	var (
		wg        sync.WaitGroup
		sentiment domain.Sentiment
		summary   *string
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sentiment = rt.sentiment.Analyze(r.Context(), req.Text)
	}()
	if wantSummary && len(req.Text) > summarizeWorthwhile {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := rt.summarizer.Summarize(r.Context(), req.Text, req.MaxSummaryLength)
			summary = &s
		}()
	}
	wg.Wait()

	writeData(w, http.StatusOK, map[string]any{
		"complexity":     stats,
		"sentiment":      sentiment,
		"summary":        summary,
		"originalLength": len(req.Text),
	})
}

func (rt *Router) summarizeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		MaxLength int    `json:"maxLength"`
		MinLength int    `json:"minLength"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}
	if req.MaxLength <= 0 {
		req.MaxLength = defaultSummaryLength
	}
	if req.MinLength <= 0 {
		req.MinLength = minSummaryInput
	}

	if len(req.Text) < req.MinLength {
		writeData(w, http.StatusOK, map[string]any{
			"summary":        req.Text,
			"originalLength": len(req.Text),
			"summarized":     false,
			"reason":         "Text too short to summarize",
		})
		return
	}

	summary, summarized := rt.summarizer.Summarize(r.Context(), req.Text, req.MaxLength)
	writeData(w, http.StatusOK, map[string]any{
		"summary":          summary,
		"originalLength":   len(req.Text),
		"summaryLength":    len(summary),
		"compressionRatio": strconv.FormatFloat(float64(len(summary))/float64(len(req.Text)), 'f', 2, 64),
		"summarized":       summarized,
	})
}

func (rt *Router) analyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	sentiment := rt.sentiment.Analyze(r.Context(), req.Text)
	writeData(w, http.StatusOK, sentiment)
}

// analyzeComplexity is fully local, so it succeeds for any valid JSON body.
func (rt *Router) analyzeComplexity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	writeData(w, http.StatusOK, usecase.AnalyzeTextComplexity(req.Text))
}

func (rt *Router) getTips(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")

	// A malformed or non-positive count falls back to the default instead
	// of rejecting the request.
	count := defaultTipCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			count = n
		}
	}

	allTips := usecase.AstronomyTips(topic)
	tips := allTips
	if count < len(tips) {
		tips = tips[:count]
	}
	writeData(w, http.StatusOK, map[string]any{
		"tips":           tips,
		"topic":          topic,
		"totalAvailable": len(allTips),
		"returned":       len(tips),
	})
}
