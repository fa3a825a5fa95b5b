package usecase

import (
	"math"
	"regexp"
	"strings"

	"github.com/astroview/astro-gateway/internal/core/domain"
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// AnalyzeTextComplexity measures text locally: words by whitespace split,
// sentences by [.!?]+ boundaries with empty trailing segments dropped.
// A zero sentence count yields an average of 0 instead of dividing by zero.
func AnalyzeTextComplexity(text string) domain.TextStats {
	words := len(strings.Fields(text))

	sentences := 0
	for _, segment := range sentenceBoundary.Split(text, -1) {
		if strings.TrimSpace(segment) != "" {
			sentences++
		}
	}

	avg := 0
	if sentences > 0 {
		avg = int(math.Round(float64(words) / float64(sentences)))
	}

	complexity := domain.ComplexitySimple
	switch {
	case avg > 25:
		complexity = domain.ComplexityComplex
	case avg > 15:
		complexity = domain.ComplexityModerate
	}

	return domain.TextStats{
		WordCount:           words,
		SentenceCount:       sentences,
		AvgWordsPerSentence: avg,
		Complexity:          complexity,
	}
}
