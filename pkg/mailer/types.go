package mailer

import "fmt"

// Email represents a fully-prepared message ready for delivery.
type Email struct {
	Headers map[string]string // Custom headers
	Subject string            // Message subject
	HTML    string            // HTML body alternative
	Text    string            // Plain text body
	From    string            // Override default sender (if provider allows)
	ReplyTo string            // Reply-to address
	To      []string          // Recipients (at least one required)
	CC      []string          // Carbon copy recipients
	BCC     []string          // Blind carbon copy recipients
}

// FormatAddress formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func FormatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
