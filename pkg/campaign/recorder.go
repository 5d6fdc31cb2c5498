package campaign

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mergekit/mergemail/pkg/logger"
)

// Recorder persists send results. Record is called exactly once per
// recipient; Close must flush on every exit path.
type Recorder interface {
	Record(ctx context.Context, res Result) error
	Close() error
}

// FileRecorder appends one line per attempt to a text log and one row
// per successful send to a results CSV. Both files are opened in append
// mode for the duration of the run, so the results file exists even when
// the run aborts before the first send.
type FileRecorder struct {
	logFile    *os.File
	log        *slog.Logger
	sentFile   *os.File
	sent       *csv.Writer
	needHeader bool
}

// NewFileRecorder opens (or creates) both output files in append mode.
func NewFileRecorder(logPath, sentPath string) (*FileRecorder, error) {
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("campaign: open log file %s: %w", logPath, err)
	}

	sentFile, err := os.OpenFile(sentPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("campaign: open results file %s: %w", sentPath, err)
	}

	info, err := sentFile.Stat()
	if err != nil {
		logFile.Close()
		sentFile.Close()
		return nil, fmt.Errorf("campaign: stat results file %s: %w", sentPath, err)
	}

	return &FileRecorder{
		logFile:    logFile,
		log:        logger.NewText(logFile, RunIDExtractor()),
		sentFile:   sentFile,
		sent:       csv.NewWriter(sentFile),
		needHeader: info.Size() == 0,
	}, nil
}

// Record implements Recorder.
func (r *FileRecorder) Record(ctx context.Context, res Result) error {
	attrs := []any{
		slog.String("email", res.Email),
		slog.String("outcome", string(res.Outcome)),
	}
	if res.Detail != "" {
		attrs = append(attrs, slog.String("detail", res.Detail))
	}
	if len(res.MissingVars) > 0 {
		attrs = append(attrs, slog.String("missing_vars", strings.Join(res.MissingVars, ",")))
	}

	if res.Outcome == OutcomeSent {
		r.log.InfoContext(ctx, "sent", attrs...)
	} else {
		r.log.ErrorContext(ctx, "failed", attrs...)
	}

	if res.Outcome != OutcomeSent {
		return nil
	}

	if r.needHeader {
		if err := r.sent.Write([]string{"email", "sent_at"}); err != nil {
			return fmt.Errorf("campaign: write results header: %w", err)
		}
		r.needHeader = false
	}
	if err := r.sent.Write([]string{res.Email, res.SentAt.UTC().Format(time.RFC3339)}); err != nil {
		return fmt.Errorf("campaign: write results row: %w", err)
	}

	r.sent.Flush()
	if err := r.sent.Error(); err != nil {
		return fmt.Errorf("campaign: flush results: %w", err)
	}
	return nil
}

// Close flushes the results writer and closes both files.
func (r *FileRecorder) Close() error {
	r.sent.Flush()
	return errors.Join(r.sent.Error(), r.sentFile.Close(), r.logFile.Close())
}
