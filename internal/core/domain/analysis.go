package domain

// AnalysisRequest is one bundle of optional inputs for the comprehensive
// analysis pipeline. An empty bundle is accepted and produces an all-null
// result; required-field validation belongs to the caller.
type AnalysisRequest struct {
	ImageURL string `json:"imageUrl,omitempty"`
	Text     string `json:"text,omitempty"`
	Topic    string `json:"topic,omitempty"`
}

func (r AnalysisRequest) Empty() bool {
	return r.ImageURL == "" && r.Text == "" && r.Topic == ""
}

type Complexity string

const (
	ComplexitySimple   Complexity = "Simple"
	ComplexityModerate Complexity = "Moderate"
	ComplexityComplex  Complexity = "Complex"
)

// TextStats is the always-available local text measurement.
type TextStats struct {
	WordCount           int        `json:"wordCount"`
	SentenceCount       int        `json:"sentenceCount"`
	AvgWordsPerSentence int        `json:"avgWordsPerSentence"`
	Complexity          Complexity `json:"complexity"`
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
	SentimentNeutral  SentimentLabel = "NEUTRAL"
)

type Sentiment struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

// NeutralSentiment is the fixed fallback for every sentiment failure path.
func NeutralSentiment() Sentiment {
	return Sentiment{Label: SentimentNeutral, Score: 0.5}
}

// AnalysisResult keeps a stable shape: fields stay explicitly null when the
// corresponding input was absent, so callers never branch on key presence.
type AnalysisResult struct {
	Timestamp     string     `json:"timestamp"`
	ImageAnalysis *string    `json:"imageAnalysis"`
	TextAnalysis  *TextStats `json:"textAnalysis"`
	Sentiment     *Sentiment `json:"sentiment"`
	Summary       *string    `json:"summary"`
	Tips          []string   `json:"tips"`
}

// BatchItemResult tags a successful outcome with the item's original index;
// concurrent completion order is not ordering-stable.
type BatchItemResult struct {
	Index int             `json:"index"`
	Data  *AnalysisResult `json:"data"`
}

type BatchItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type BatchSummary struct {
	Total       int    `json:"total"`
	Successful  int    `json:"successful"`
	Failed      int    `json:"failed"`
	SuccessRate string `json:"successRate"`
}

type BatchReport struct {
	Results []BatchItemResult `json:"results"`
	Errors  []BatchItemError  `json:"errors"`
	Summary BatchSummary      `json:"summary"`
}
