package mailer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate_SubjectAndBody(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("Hi $name\nHello $name,\n\nBest,\nSales\n"))
	require.NoError(t, err)
	require.Equal(t, "Hi $name", tmpl.Subject)
	require.Equal(t, "Hello $name,\n\nBest,\nSales\n", tmpl.Body)
}

func TestParseTemplate_SubjectPrefixStripped(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("Subject: Quick question, $name\nBody line\n"))
	require.NoError(t, err)
	require.Equal(t, "Quick question, $name", tmpl.Subject)
}

func TestParseTemplate_PreservesBlankLines(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("Subject\nline one\n\n\nline four\n"))
	require.NoError(t, err)
	require.Equal(t, "line one\n\n\nline four\n", tmpl.Body)
}

func TestParseTemplate_CRLF(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("Subject\r\nline one\r\nline two\r\n"))
	require.NoError(t, err)
	require.Equal(t, "Subject", tmpl.Subject)
	require.Equal(t, "line one\nline two\n", tmpl.Body)
}

func TestParseTemplate_Empty(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate([]byte(""))
	require.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = ParseTemplate([]byte("   \n  \n"))
	require.ErrorIs(t, err, ErrEmptyTemplate)
}

func TestParseTemplate_NoBody(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate([]byte("Subject only"))
	require.ErrorIs(t, err, ErrNoBody)

	_, err = ParseTemplate([]byte("Subject only\n"))
	require.ErrorIs(t, err, ErrNoBody)
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTemplate_ReadsFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "template.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hi $name\nHello $name,\n"), 0o644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Equal(t, "Hi $name", tmpl.Subject)
}
