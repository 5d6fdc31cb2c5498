package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON-formatted stdout logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}

// NewText creates a text-formatted logger writing only to w.
// The campaign recorder uses this for the append-only attempt log, which
// must stay readable without tooling.
func NewText(w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewLogHandlerDecorator(h, extractors...))
}
