// Package logging builds the process-wide structured logger. All output is
// JSON on stdout, tagged with the owning service name.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// levelNames maps configured spellings onto slog levels. An unknown name
// falls back to info so a typo never silences the process.
var levelNames = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func New(service, level string) *slog.Logger {
	return NewWithWriter(os.Stdout, service, level)
}

// NewWithWriter is the injectable variant; tests use it to capture output.
func NewWithWriter(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With(slog.String("service", service))
}

func ParseLevel(level string) slog.Level {
	if lv, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]; ok {
		return lv
	}
	return slog.LevelInfo
}
