package campaign

import (
	"context"
	"log/slog"

	"github.com/mergekit/mergemail/pkg/logger"
)

type runIDKey struct{}

// WithRunID attaches a campaign run ID to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the campaign run ID, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// RunIDExtractor returns a logger extractor that injects the run ID
// into every log record emitted with the run's context.
func RunIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := RunIDFromContext(ctx); ok {
			return slog.String("run_id", id), true
		}
		return slog.Attr{}, false
	}
}
