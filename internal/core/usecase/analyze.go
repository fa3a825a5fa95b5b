package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/astroview/astro-gateway/internal/core/domain"
	"github.com/astroview/astro-gateway/internal/core/ports"
)

const (
	// summarizeThreshold is the text length above which the orchestrator
	// requests a summary; shorter text leaves the summary field null.
	summarizeThreshold = 200
	summaryTargetLen   = 150
)

// AnalysisUseCase fans an input bundle out to the adapters implied by the
// fields present and merges their results. Adapter failures never fail the
// overall call: each inference adapter degrades to its own fallback value.
type AnalysisUseCase struct {
	captioner  ports.ImageCaptioner
	summarizer ports.TextSummarizer
	sentiment  ports.SentimentAnalyzer
}

func NewAnalysisUseCase(
	captioner ports.ImageCaptioner,
	summarizer ports.TextSummarizer,
	sentiment ports.SentimentAnalyzer,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		captioner:  captioner,
		summarizer: summarizer,
		sentiment:  sentiment,
	}
}

func (uc *AnalysisUseCase) Perform(ctx context.Context, req domain.AnalysisRequest) (result *domain.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = domain.WrapError(domain.ErrAnalysis, "comprehensive analysis", fmt.Errorf("panic: %v", r))
		}
	}()

	result = &domain.AnalysisResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	// The image, sentiment and summary branches touch disjoint fields and
	// carry no ordering dependency, so they run concurrently. Each branch
	// recovers its own panics on its own goroutine: a blown-up adapter must
	// fail this one call, never the process or a sibling batch item.
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		branchErr error
	)
	branch := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if branchErr == nil {
						branchErr = fmt.Errorf("%s: panic: %v", name, r)
					}
					mu.Unlock()
				}
			}()
			fn()
		}()
	}

	if req.ImageURL != "" {
		branch("image analysis", func() {
			caption := uc.captioner.Caption(ctx, req.ImageURL)
			result.ImageAnalysis = &caption
		})
	}

	if req.Text != "" {
		stats := AnalyzeTextComplexity(req.Text)
		result.TextAnalysis = &stats

		branch("sentiment analysis", func() {
			sentiment := uc.sentiment.Analyze(ctx, req.Text)
			result.Sentiment = &sentiment
		})

		if len(req.Text) > summarizeThreshold {
			branch("summarization", func() {
				summary, _ := uc.summarizer.Summarize(ctx, req.Text, summaryTargetLen)
				result.Summary = &summary
			})
		}
	}

	if req.Topic != "" {
		result.Tips = AstronomyTips(req.Topic)
	}

	wg.Wait()
	if branchErr != nil {
		return nil, domain.WrapError(domain.ErrAnalysis, "comprehensive analysis", branchErr)
	}
	return result, nil
}
