package mailer

import "errors"

var (
	// ErrEmptyTemplate indicates the template file has no subject line.
	ErrEmptyTemplate = errors.New("mailer: template is empty")

	// ErrNoBody indicates the template has a subject but no body lines.
	ErrNoBody = errors.New("mailer: template has no body")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("mailer: email must have at least one recipient")

	// ErrRenderFailed indicates rendering the HTML alternative failed.
	ErrRenderFailed = errors.New("mailer: failed to render message")
)
