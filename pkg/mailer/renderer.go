package mailer

import (
	"bytes"
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrender "github.com/yuin/goldmark/renderer/html"
)

// placeholderPattern matches $name, ${name}, and the $$ escape.
// Names follow identifier rules, same as recipient column headers.
var placeholderPattern = regexp.MustCompile(`\$(?:\$|[A-Za-z_][A-Za-z0-9_]*|\{[A-Za-z_][A-Za-z0-9_]*\})`)

// Message is a rendered, per-recipient message. Consumed immediately by
// the send step; not retained.
type Message struct {
	Subject string
	Text    string
	HTML    string
	// MissingVars lists placeholder names that had no matching recipient
	// column. Those placeholders stay verbatim in the output.
	MissingVars []string
}

// Renderer substitutes recipient variables into a Template and produces
// a sanitized HTML alternative for the body. Safe for reuse across a run.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer. Linkify turns bare URLs into links and
// hard wraps keep the template's line breaks in the HTML part.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(htmlrender.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render fills the template's placeholders from recipient columns.
// A placeholder whose name is not a column is left verbatim and reported
// in MissingVars; a column that exists but is empty substitutes the empty
// string. Rendering is deterministic.
func (r *Renderer) Render(tmpl *Template, vars map[string]string) (*Message, error) {
	missing := make(map[string]struct{})

	subject := substitute(tmpl.Subject, vars, missing)
	text := substitute(tmpl.Body, vars, missing)

	var htmlBuf bytes.Buffer
	if err := r.md.Convert([]byte(text), &htmlBuf); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	slices.Sort(names)

	return &Message{
		Subject:     subject,
		Text:        text,
		HTML:        r.policy.Sanitize(htmlBuf.String()),
		MissingVars: names,
	}, nil
}

func substitute(s string, vars map[string]string, missing map[string]struct{}) string {
	return placeholderPattern.ReplaceAllStringFunc(s, func(m string) string {
		if m == "$$" {
			return "$"
		}
		name := strings.Trim(m[1:], "{}")
		if v, ok := vars[name]; ok {
			return v
		}
		missing[name] = struct{}{}
		return m
	})
}
