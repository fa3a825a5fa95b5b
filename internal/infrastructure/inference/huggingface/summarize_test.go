package huggingface

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestSummarizeShortTextReturnsInput(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Error("short text must not reach the model")
	})
	summarizer := NewSummarizer(client)

	text := "Short text."
	got, summarized := summarizer.Summarize(context.Background(), text, 150)
	if got != text || summarized {
		t.Errorf("expected input unchanged and not summarized, got %q %v", got, summarized)
	}
}

func TestSummarizeSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"summary_text":"condensed"}]`))
	})
	summarizer := NewSummarizer(client)

	long := strings.Repeat("The telescope captured remarkable detail. ", 10)
	got, summarized := summarizer.Summarize(context.Background(), long, 150)
	if got != "condensed" || !summarized {
		t.Errorf("expected summary, got %q %v", got, summarized)
	}
}

func TestSummarizeFailsOpen(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	summarizer := NewSummarizer(client)

	long := strings.Repeat("The telescope captured remarkable detail. ", 10)
	got, summarized := summarizer.Summarize(context.Background(), long, 150)
	if got != long || summarized {
		t.Error("model failure must return the original text unsummarized")
	}
}

func TestSummarizeWithoutToken(t *testing.T) {
	client := New("http://unused.invalid", "", 0, nil, nil)
	summarizer := NewSummarizer(client)

	long := strings.Repeat("The telescope captured remarkable detail. ", 10)
	got, summarized := summarizer.Summarize(context.Background(), long, 150)
	if got != long || summarized {
		t.Error("missing token must return the original text unsummarized")
	}
}
