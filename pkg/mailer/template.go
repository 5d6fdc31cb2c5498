package mailer

import (
	"fmt"
	"os"
	"strings"
)

// Template is a parsed mail-merge template: a subject line and a body,
// both of which may contain $variable placeholders. Immutable for a run.
type Template struct {
	Subject string
	Body    string
}

// LoadTemplate reads and parses a template file.
func LoadTemplate(path string) (*Template, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mailer: read template %s: %w", path, err)
	}
	return ParseTemplate(content)
}

// ParseTemplate parses template content. The first line is the subject
// (an optional "Subject:" prefix is stripped); everything after the first
// line break is the body, preserved verbatim including blank lines.
func ParseTemplate(content []byte) (*Template, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTemplate
	}

	subject, body, found := strings.Cut(text, "\n")
	if !found || strings.TrimSpace(body) == "" {
		return nil, ErrNoBody
	}

	subject = strings.TrimSpace(subject)
	if rest, ok := cutPrefixFold(subject, "subject:"); ok {
		subject = strings.TrimSpace(rest)
	}
	if subject == "" {
		return nil, ErrEmptyTemplate
	}

	return &Template{
		Subject: subject,
		Body:    strings.TrimRight(body, "\n") + "\n",
	}, nil
}

// cutPrefixFold is strings.CutPrefix with case-insensitive matching.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
