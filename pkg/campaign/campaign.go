package campaign

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mergekit/mergemail/pkg/logger"
	"github.com/mergekit/mergemail/pkg/mailer"
	"github.com/mergekit/mergemail/pkg/recipients"
)

// Campaign runs one mail-merge pass over a recipient file.
// The sender must already hold a valid credential; the campaign never
// reacquires it mid-run.
type Campaign struct {
	sender   mailer.Sender
	renderer *mailer.Renderer
	recorder Recorder
	log      *slog.Logger
	delay    time.Duration
	cc       []string
	sleep    func(time.Duration)
	now      func() time.Time
}

// Option configures a Campaign.
type Option func(*Campaign)

// WithDelay sets the pause between consecutive sends.
func WithDelay(d time.Duration) Option {
	return func(c *Campaign) {
		c.delay = d
	}
}

// WithCC sets static CC addresses applied to every outgoing message.
func WithCC(cc []string) Option {
	return func(c *Campaign) {
		c.cc = cc
	}
}

// WithLogger sets the progress logger. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Campaign) {
		c.log = log
	}
}

// WithSleep replaces the blocking pause implementation, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Campaign) {
		c.sleep = sleep
	}
}

// WithClock replaces the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Campaign) {
		c.now = now
	}
}

// New creates a campaign with the given delivery, rendering, and
// recording collaborators.
func New(sender mailer.Sender, renderer *mailer.Renderer, recorder Recorder, opts ...Option) *Campaign {
	c := &Campaign{
		sender:   sender,
		renderer: renderer,
		recorder: recorder,
		log:      logger.NewNope(),
		sleep:    time.Sleep,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run processes every recipient in order and returns a summary.
// Individual send failures are recorded and skipped; Run returns an
// error only for recipient-file read failures or recorder I/O failures.
func (c *Campaign) Run(ctx context.Context, tmpl *mailer.Template, recs *recipients.Reader) (Summary, error) {
	sum := Summary{RunID: uuid.NewString()}
	ctx = WithRunID(ctx, sum.RunID)

	c.log.InfoContext(ctx, "campaign started", slog.String("subject", tmpl.Subject))

	for {
		rec, err := recs.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("campaign: read recipient: %w", err)
		}

		// Pause between consecutive recipients, never after the last.
		if sum.Processed > 0 && c.delay > 0 {
			c.sleep(c.delay)
		}

		res := c.process(ctx, tmpl, rec)
		sum.Processed++
		if res.Outcome == OutcomeSent {
			sum.Sent++
		} else {
			sum.Failed++
		}
		if len(res.MissingVars) > 0 {
			sum.Anomalies++
		}

		if err := c.recorder.Record(ctx, res); err != nil {
			return sum, fmt.Errorf("campaign: record result: %w", err)
		}

		if res.Outcome == OutcomeSent {
			c.log.InfoContext(ctx, "message sent", slog.String("email", res.Email))
		} else {
			c.log.ErrorContext(ctx, "send failed",
				slog.String("email", res.Email),
				slog.String("detail", res.Detail))
		}
	}

	c.log.InfoContext(ctx, "campaign finished",
		slog.Int("sent", sum.Sent),
		slog.Int("failed", sum.Failed),
		slog.Int("anomalies", sum.Anomalies))

	return sum, nil
}

// process renders and delivers one message, always returning a Result.
func (c *Campaign) process(ctx context.Context, tmpl *mailer.Template, rec recipients.Recipient) Result {
	res := Result{
		Email:  rec.Email(),
		SentAt: c.now().UTC(),
	}

	if res.Email == "" {
		res.Outcome = OutcomeFailed
		res.Detail = "missing email address"
		return res
	}

	msg, err := c.renderer.Render(tmpl, rec)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Detail = err.Error()
		return res
	}
	res.MissingVars = msg.MissingVars

	email := &mailer.Email{
		To:      []string{res.Email},
		CC:      c.cc,
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	}

	if err := c.sender.Send(ctx, email); err != nil {
		res.Outcome = OutcomeFailed
		res.Detail = err.Error()
		return res
	}

	res.Outcome = OutcomeSent
	return res
}
