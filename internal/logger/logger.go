package logger

import (
	"log/slog"
	"os"
)

// New returns a slog.Logger writing to stdout. format is "json" or "text"
// (anything else falls back to text).
func New(format string) *slog.Logger {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(h)
}
