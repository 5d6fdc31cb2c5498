package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_SubstitutesVariables(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Hi $name", Body: "Hello $name from $company\n"}
	msg, err := NewRenderer().Render(tmpl, map[string]string{
		"name":    "Jane",
		"company": "Acme",
	})
	require.NoError(t, err)
	require.Equal(t, "Hi Jane", msg.Subject)
	require.Equal(t, "Hello Jane from Acme\n", msg.Text)
	require.Empty(t, msg.MissingVars)
}

func TestRender_BracedPlaceholder(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Hi ${name}", Body: "Bye ${name}\n"}
	msg, err := NewRenderer().Render(tmpl, map[string]string{"name": "Jane"})
	require.NoError(t, err)
	require.Equal(t, "Hi Jane", msg.Subject)
	require.Equal(t, "Bye Jane\n", msg.Text)
}

func TestRender_UnknownPlaceholderLeftVerbatim(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Hi $name", Body: "Your order $order_id is ready\n"}
	msg, err := NewRenderer().Render(tmpl, map[string]string{"name": "Jane"})
	require.NoError(t, err)
	require.Equal(t, "Your order $order_id is ready\n", msg.Text)
	require.Equal(t, []string{"order_id"}, msg.MissingVars)
}

func TestRender_EmptyColumnSubstitutesEmptyString(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Hi $name", Body: "Hello $name!\n"}
	msg, err := NewRenderer().Render(tmpl, map[string]string{"name": ""})
	require.NoError(t, err)
	require.Equal(t, "Hi ", msg.Subject)
	require.Equal(t, "Hello !\n", msg.Text)
	require.Empty(t, msg.MissingVars)
}

func TestRender_DollarEscape(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Price", Body: "Only $$99 for $name\n"}
	msg, err := NewRenderer().Render(tmpl, map[string]string{"name": "Jane"})
	require.NoError(t, err)
	require.Equal(t, "Only $99 for Jane\n", msg.Text)
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Hi $name", Body: "Hello $name, $missing and $also_missing\n"}
	vars := map[string]string{"name": "Jane"}

	r := NewRenderer()
	first, err := r.Render(tmpl, vars)
	require.NoError(t, err)
	second, err := r.Render(tmpl, vars)
	require.NoError(t, err)

	require.Equal(t, first.Subject, second.Subject)
	require.Equal(t, first.Text, second.Text)
	require.Equal(t, first.HTML, second.HTML)
	require.Equal(t, []string{"also_missing", "missing"}, first.MissingVars)
	require.Equal(t, first.MissingVars, second.MissingVars)
}

func TestRender_HTMLLinkifiesURLs(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Demo", Body: "Book a slot: https://example.com/book\n"}
	msg, err := NewRenderer().Render(tmpl, nil)
	require.NoError(t, err)
	require.Contains(t, msg.HTML, `href="https://example.com/book"`)
}

func TestRender_HTMLPreservesLineBreaks(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Demo", Body: "line one\nline two\n"}
	msg, err := NewRenderer().Render(tmpl, nil)
	require.NoError(t, err)
	require.Contains(t, msg.HTML, "<br")
}

func TestRender_HTMLSanitized(t *testing.T) {
	t.Parallel()

	tmpl := &Template{Subject: "Demo", Body: "<script>alert(1)</script> hello\n"}
	msg, err := NewRenderer().Render(tmpl, nil)
	require.NoError(t, err)
	require.NotContains(t, msg.HTML, "<script>")
}
