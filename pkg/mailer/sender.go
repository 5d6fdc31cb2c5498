package mailer

import "context"

// Sender is the minimal interface that delivery providers implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers one message. The Email must have To, Subject,
	// and Text already set. Returns an error if delivery fails.
	Send(ctx context.Context, email *Email) error
}
