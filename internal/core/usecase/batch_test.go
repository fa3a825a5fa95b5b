package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

func TestBatchRejectsEmpty(t *testing.T) {
	uc, _ := newTestAnalysisUseCase()

	_, err := uc.Batch(context.Background(), nil)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestBatchRejectsTooManyItems(t *testing.T) {
	uc, captioner := newTestAnalysisUseCase()

	items := make([]domain.AnalysisRequest, MaxBatchItems+1)
	for i := range items {
		items[i] = domain.AnalysisRequest{ImageURL: fmt.Sprintf("https://example.com/%d.jpg", i)}
	}

	_, err := uc.Batch(context.Background(), items)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if n := captioner.calls.Load(); n != 0 {
		t.Errorf("oversized batch must be rejected before dispatch, captioner ran %d times", n)
	}
}

func TestBatchIsolatesPanickingItem(t *testing.T) {
	captioner := &fakeCaptioner{panicOn: "https://example.com/3.jpg"}
	uc := NewAnalysisUseCase(captioner, &fakeSummarizer{}, &fakeSentiment{})

	items := make([]domain.AnalysisRequest, MaxBatchItems)
	for i := range items {
		items[i] = domain.AnalysisRequest{ImageURL: fmt.Sprintf("https://example.com/%d.jpg", i)}
	}

	report, err := uc.Batch(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Results) != 9 {
		t.Errorf("expected 9 successes, got %d", len(report.Results))
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(report.Errors))
	}
	if report.Errors[0].Index != 3 {
		t.Errorf("expected the failure tagged with index 3, got %d", report.Errors[0].Index)
	}

	seen := map[int]bool{}
	for _, r := range report.Results {
		seen[r.Index] = true
	}
	if seen[3] {
		t.Error("panicking item must not appear among successes")
	}

	if report.Summary.Total != 10 || report.Summary.Successful != 9 || report.Summary.Failed != 1 {
		t.Errorf("unexpected summary: %+v", report.Summary)
	}
	if report.Summary.SuccessRate != "90.00%" {
		t.Errorf("expected success rate 90.00%%, got %s", report.Summary.SuccessRate)
	}
}

func TestBatchSingleItem(t *testing.T) {
	uc, _ := newTestAnalysisUseCase()

	report, err := uc.Batch(context.Background(), []domain.AnalysisRequest{{Topic: "mars"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Summary.SuccessRate != "100.00%" {
		t.Errorf("expected success rate 100.00%%, got %s", report.Summary.SuccessRate)
	}
	if report.Results[0].Index != 0 {
		t.Errorf("expected index 0, got %d", report.Results[0].Index)
	}
}
