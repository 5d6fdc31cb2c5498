package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mergekit/mergemail/pkg/mailer"
	"github.com/mergekit/mergemail/pkg/recipients"
)

func TestRootCmd_RequiredFlags(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd()
	cmd.SetArgs([]string{})
	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "csv")
	require.Contains(t, err.Error(), "template")
}

func TestRun_NegativeDelay(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), runOptions{
		csvPath:      "recipients.csv",
		templatePath: "template.txt",
		delay:        -1,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-negative")
}

func TestRun_TemplateWithoutBodyAbortsBeforeOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "recipients.csv")
	tmplPath := filepath.Join(dir, "template.txt")
	require.NoError(t, os.WriteFile(csvPath, []byte("email\njane@x.com\n"), 0o644))
	require.NoError(t, os.WriteFile(tmplPath, []byte("Subject only\n"), 0o644))

	err := run(context.Background(), runOptions{
		csvPath:      csvPath,
		templatePath: tmplPath,
	})
	require.ErrorIs(t, err, mailer.ErrNoBody)
}

func TestRun_MissingEmailColumnIsFatal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "recipients.csv")
	tmplPath := filepath.Join(dir, "template.txt")
	require.NoError(t, os.WriteFile(csvPath, []byte("name\nJane\n"), 0o644))
	require.NoError(t, os.WriteFile(tmplPath, []byte("Hi $name\nHello $name,\n"), 0o644))

	err := run(context.Background(), runOptions{
		csvPath:      csvPath,
		templatePath: tmplPath,
	})
	require.ErrorIs(t, err, recipients.ErrMissingEmailColumn)
}

func TestRun_UnknownProvider(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MERGEMAIL_LOG_FILE", filepath.Join(dir, "mergemail.log"))
	t.Setenv("MERGEMAIL_SENT_FILE", filepath.Join(dir, "sent.csv"))

	csvPath := filepath.Join(dir, "recipients.csv")
	tmplPath := filepath.Join(dir, "template.txt")
	require.NoError(t, os.WriteFile(csvPath, []byte("email\njane@x.com\n"), 0o644))
	require.NoError(t, os.WriteFile(tmplPath, []byte("Hi\nHello,\n"), 0o644))

	err := run(context.Background(), runOptions{
		csvPath:      csvPath,
		templatePath: tmplPath,
		provider:     "carrier-pigeon",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown provider")

	// The run aborted before any send: both output files exist, empty.
	logInfo, statErr := os.Stat(filepath.Join(dir, "mergemail.log"))
	require.NoError(t, statErr)
	require.Zero(t, logInfo.Size())
	sentInfo, statErr := os.Stat(filepath.Join(dir, "sent.csv"))
	require.NoError(t, statErr)
	require.Zero(t, sentInfo.Size())
}
