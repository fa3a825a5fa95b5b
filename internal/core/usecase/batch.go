package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

// MaxBatchItems bounds one batch request.
const MaxBatchItems = 10

type batchOutcome struct {
	result *domain.AnalysisResult
	err    error
}

// Batch dispatches every item concurrently. One item failing, erroring or
// panicking must never cancel or taint its siblings; outcomes keep the
// original item index so callers can reorder.
func (uc *AnalysisUseCase) Batch(ctx context.Context, items []domain.AnalysisRequest) (*domain.BatchReport, error) {
	if len(items) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "batch analysis", errors.New("items must not be empty"))
	}
	if len(items) > MaxBatchItems {
		return nil, domain.WrapError(domain.ErrInvalidInput, "batch analysis",
			fmt.Errorf("maximum %d items allowed per batch, got %d", MaxBatchItems, len(items)))
	}

	outcomes := make([]batchOutcome, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item domain.AnalysisRequest) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = batchOutcome{err: fmt.Errorf("internal error: %v", r)}
				}
			}()
			result, err := uc.Perform(ctx, item)
			outcomes[i] = batchOutcome{result: result, err: err}
		}(i, item)
	}
	wg.Wait()

	report := &domain.BatchReport{
		Results: []domain.BatchItemResult{},
		Errors:  []domain.BatchItemError{},
	}
	for i, outcome := range outcomes {
		if outcome.err != nil {
			report.Errors = append(report.Errors, domain.BatchItemError{Index: i, Error: outcome.err.Error()})
			continue
		}
		report.Results = append(report.Results, domain.BatchItemResult{Index: i, Data: outcome.result})
	}

	report.Summary = domain.BatchSummary{
		Total:       len(items),
		Successful:  len(report.Results),
		Failed:      len(report.Errors),
		SuccessRate: fmt.Sprintf("%.2f%%", float64(len(report.Results))/float64(len(items))*100),
	}
	return report, nil
}
