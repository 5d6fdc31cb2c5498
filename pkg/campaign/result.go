package campaign

import "time"

// Outcome classifies one send attempt.
type Outcome string

const (
	OutcomeSent   Outcome = "sent"
	OutcomeFailed Outcome = "failed"
)

// Result is the record of one send attempt. Every recipient processed
// produces exactly one Result.
type Result struct {
	Email   string
	SentAt  time.Time
	Outcome Outcome
	// Detail carries the error text for failed attempts.
	Detail string
	// MissingVars lists template placeholders that had no matching
	// column for this recipient. The message is still sent with the
	// placeholders left verbatim.
	MissingVars []string
}

// Summary aggregates a finished run.
type Summary struct {
	RunID     string
	Processed int
	Sent      int
	Failed    int
	// Anomalies counts recipients whose message had unresolved
	// placeholders.
	Anomalies int
}
