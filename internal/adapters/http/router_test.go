package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/astroview/astro-gateway/internal/config"
	"github.com/astroview/astro-gateway/internal/core/domain"
)

type fakeFeed struct {
	payload any
	stats   *domain.NEOStats
	err     error
}

func (f *fakeFeed) APOD(context.Context, string) (any, error)       { return f.payload, f.err }
func (f *fakeFeed) RandomAPOD(context.Context) (any, error)         { return f.payload, f.err }
func (f *fakeFeed) MarsPhotos(context.Context, string, int, int) (any, error) {
	return f.payload, f.err
}
func (f *fakeFeed) RoverManifest(context.Context, string) (any, error) { return f.payload, f.err }
func (f *fakeFeed) NEOFeed(context.Context, string, string) (any, error) {
	return f.payload, f.err
}
func (f *fakeFeed) NEOStats(context.Context, string, string) (*domain.NEOStats, error) {
	return f.stats, f.err
}
func (f *fakeFeed) SearchLibrary(context.Context, string, string) (any, error) {
	return f.payload, f.err
}

type fakeAnalysis struct {
	result *domain.AnalysisResult
	report *domain.BatchReport
	err    error
}

func (f *fakeAnalysis) Perform(context.Context, domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	return f.result, f.err
}

func (f *fakeAnalysis) Batch(_ context.Context, items []domain.AnalysisRequest) (*domain.BatchReport, error) {
	if len(items) == 0 || len(items) > 10 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "batch analysis", errors.New("bad batch size"))
	}
	return f.report, f.err
}

type fakeGate struct{ open bool }

func (f *fakeGate) Available() bool { return f.open }

type fakeProber struct{ err error }

func (f *fakeProber) Probe(context.Context) error { return f.err }

type fakeCaptioner struct{ caption string }

func (f *fakeCaptioner) Caption(context.Context, string) string { return f.caption }

type fakeSummarizer struct {
	summary    string
	summarized bool
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string, _ int) (string, bool) {
	if !f.summarized {
		return text, false
	}
	return f.summary, true
}

type fakeSentiment struct{}

func (f *fakeSentiment) Analyze(context.Context, string) domain.Sentiment {
	return domain.NeutralSentiment()
}

type routerFixture struct {
	feed     *fakeFeed
	analysis *fakeAnalysis
	gate     *fakeGate
	prober   *fakeProber
}

func newTestRouter(t *testing.T, fx routerFixture) http.Handler {
	t.Helper()
	if fx.feed == nil {
		fx.feed = &fakeFeed{payload: map[string]any{"title": "x"}}
	}
	if fx.analysis == nil {
		fx.analysis = &fakeAnalysis{
			result: &domain.AnalysisResult{Timestamp: "2026-09-01T00:00:00Z"},
			report: &domain.BatchReport{
				Results: []domain.BatchItemResult{},
				Errors:  []domain.BatchItemError{},
				Summary: domain.BatchSummary{SuccessRate: "100.00%"},
			},
		}
	}
	if fx.gate == nil {
		fx.gate = &fakeGate{open: true}
	}
	if fx.prober == nil {
		fx.prober = &fakeProber{}
	}

	cfg := config.Config{
		AllowedOrigins:   []string{"*"},
		RateLimitGeneral: config.RateTier{Requests: 10000, Window: time.Minute},
		RateLimitAI:      config.RateTier{Requests: 10000, Window: time.Minute},
		RateLimitHeavy:   config.RateTier{Requests: 10000, Window: time.Minute},
	}

	return NewRouter(
		fx.feed,
		fx.analysis,
		fx.analysis,
		fx.gate,
		fx.prober,
		&fakeCaptioner{caption: "a starry sky"},
		&fakeSummarizer{summary: "condensed", summarized: true},
		&fakeSentiment{},
		nil,
		slog.New(slog.DiscardHandler),
		cfg,
	).Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v (%s)", err, rec.Body.String())
	}
	return rec, env
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !env.Success || env.Timestamp == "" {
		t.Errorf("bad envelope: %+v", env)
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodGet, "/api/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Success || env.Error == "" {
		t.Errorf("expected a failure envelope, got %+v", env)
	}
}

func TestMarsPhotosInvalidRover(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodGet, "/api/mars/photos?rover=sojourner", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestMarsPhotosInvalidSol(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, _ := doRequest(t, handler, http.MethodGet, "/api/mars/photos?sol=-1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative sol, got %d", rec.Code)
	}
}

func TestRoverManifestInvalidRover(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, _ := doRequest(t, handler, http.MethodGet, "/api/mars/rovers/viking", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, _ := doRequest(t, handler, http.MethodGet, "/api/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", rec.Code)
	}
}

func TestUpstreamErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "upstream 404 passes through",
			err:        &domain.UpstreamStatusError{Service: "nasa", StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantError:  "NASA API Error: Not Found",
		},
		{
			name:       "upstream 429 gets the fixed message",
			err:        &domain.UpstreamStatusError{Service: "nasa", StatusCode: http.StatusTooManyRequests},
			wantStatus: http.StatusTooManyRequests,
			wantError:  rateLimitedMessage,
		},
		{
			name:       "upstream 500 collapses to generic",
			err:        &domain.UpstreamStatusError{Service: "nasa", StatusCode: http.StatusBadGateway},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to fetch data from NASA API",
		},
		{
			name:       "network failure collapses to generic",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to fetch data from NASA API",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := newTestRouter(t, routerFixture{feed: &fakeFeed{err: tc.err}})

			rec, env := doRequest(t, handler, http.MethodGet, "/api/apod", nil)
			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if env.Error != tc.wantError {
				t.Errorf("expected error %q, got %q", tc.wantError, env.Error)
			}
		})
	}
}

func TestAnalyzeRejectsEmptyBundle(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, _ := doRequest(t, handler, http.MethodPost, "/api/ai/analyze", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty bundle, got %d", rec.Code)
	}
}

func TestBatchTooLargeRejected(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	items := make([]map[string]string, 11)
	for i := range items {
		items[i] = map[string]string{"topic": "mars"}
	}
	rec, _ := doRequest(t, handler, http.MethodPost, "/api/ai/batch", map[string]any{"items": items})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 11 items, got %d", rec.Code)
	}
}

func TestImageAnalyzeRequiresURL(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, _ := doRequest(t, handler, http.MethodPost, "/api/ai/image/analyze", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without imageUrl, got %d", rec.Code)
	}
}

func TestComplexityAlwaysSucceeds(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodPost, "/api/ai/text/complexity", map[string]string{"text": "A. B! C? D."})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	if data["wordCount"] != float64(4) || data["sentenceCount"] != float64(4) {
		t.Errorf("unexpected stats: %+v", data)
	}
	if data["complexity"] != "Simple" {
		t.Errorf("expected Simple, got %v", data["complexity"])
	}
}

func TestSummarizeShortTextShortCircuits(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodPost, "/api/ai/text/summarize", map[string]any{"text": "Too short."})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	if data["summarized"] != false {
		t.Error("short text must not be summarized")
	}
	if data["reason"] != "Text too short to summarize" {
		t.Errorf("unexpected reason: %v", data["reason"])
	}
	if data["summary"] != "Too short." {
		t.Errorf("expected input returned unchanged, got %v", data["summary"])
	}
}

func TestTextAnalyzeShortTextKeepsSummaryNull(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodPost, "/api/ai/text/analyze", map[string]any{"text": "A short sentence."})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	if data["summary"] != nil {
		t.Errorf("short text must keep summary null, got %v", data["summary"])
	}
	if data["originalLength"] != float64(len("A short sentence.")) {
		t.Errorf("unexpected originalLength: %v", data["originalLength"])
	}
	if _, ok := data["complexity"].(map[string]any); !ok {
		t.Error("expected complexity stats in the payload")
	}
	if _, ok := data["sentiment"].(map[string]any); !ok {
		t.Error("expected sentiment in the payload")
	}
}

func TestTipsEndpointSlices(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodGet, "/api/ai/tips/mars?count=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	tips, _ := data["tips"].([]any)
	if len(tips) != 2 {
		t.Errorf("expected 2 tips, got %d", len(tips))
	}
}

func TestTipsInvalidCountFallsBackToDefault(t *testing.T) {
	handler := newTestRouter(t, routerFixture{})

	rec, env := doRequest(t, handler, http.MethodGet, "/api/ai/tips/mars?count=abc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for malformed count, got %d", rec.Code)
	}
	data, _ := env.Data.(map[string]any)
	tips, _ := data["tips"].([]any)
	if len(tips) != 3 {
		t.Errorf("expected the default 3 tips, got %d", len(tips))
	}
}

func TestAIHealthWithoutToken(t *testing.T) {
	handler := newTestRouter(t, routerFixture{gate: &fakeGate{open: false}})

	rec, _ := doRequest(t, handler, http.MethodGet, "/api/ai/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without token, got %d", rec.Code)
	}
}

func TestAIHealthProbeFailure(t *testing.T) {
	probeErr := domain.WrapError(domain.ErrUnavailable, "inference probe", errors.New("model cold"))
	handler := newTestRouter(t, routerFixture{prober: &fakeProber{err: probeErr}})

	rec, env := doRequest(t, handler, http.MethodGet, "/api/ai/health", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on probe failure, got %d", rec.Code)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
	if env.Error != "AI services degraded: inference probe failed" {
		t.Errorf("unexpected error message: %q", env.Error)
	}
}

func TestAIStatusReportsCapabilities(t *testing.T) {
	handler := newTestRouter(t, routerFixture{gate: &fakeGate{open: false}})

	_, env := doRequest(t, handler, http.MethodGet, "/api/ai/status", nil)
	data, _ := env.Data.(map[string]any)
	if data["available"] != false {
		t.Error("expected available false")
	}
	services, _ := data["services"].(map[string]any)
	if services["textComplexity"] != true || services["astronomyTips"] != true {
		t.Error("local services must stay available without a token")
	}
	if services["imageAnalysis"] != false {
		t.Error("inference services must be off without a token")
	}
}
