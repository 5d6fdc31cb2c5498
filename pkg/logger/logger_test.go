package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewText_WritesToWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewText(&buf)

	log.Info("message sent", slog.String("email", "jane@example.com"))

	out := buf.String()
	require.Contains(t, out, "msg=\"message sent\"")
	require.Contains(t, out, "email=jane@example.com")
	require.Contains(t, out, "time=")
}

func TestNewText_ContextExtractor(t *testing.T) {
	t.Parallel()

	type ctxKey struct{}

	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
			return slog.String("run_id", id), true
		}
		return slog.Attr{}, false
	}

	var buf bytes.Buffer
	log := NewText(&buf, extractor)

	ctx := context.WithValue(context.Background(), ctxKey{}, "run-42")
	log.InfoContext(ctx, "first")
	log.Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "run_id=run-42")
	require.NotContains(t, lines[1], "run_id=")
}

func TestDecorator_FiltersNilExtractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewText(&buf, nil, nil)

	require.NotPanics(t, func() {
		log.Info("still works")
	})
	require.Contains(t, buf.String(), "still works")
}

func TestMultiHandler_FanOut(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	h := newMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewTextHandler(&b, nil),
	)
	log := slog.New(h)

	log.Info("both sinks")

	require.Contains(t, a.String(), "both sinks")
	require.Contains(t, b.String(), "both sinks")
}

func TestNewNope_Discards(t *testing.T) {
	t.Parallel()

	log := NewNope()
	require.NotPanics(t, func() {
		log.Error("dropped")
	})
}
