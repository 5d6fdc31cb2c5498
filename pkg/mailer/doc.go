// Package mailer defines the message model for mail-merge campaigns:
// the parsed subject/body template, per-recipient rendering with $variable
// substitution, and the Sender interface that delivery providers implement.
//
// Templates are plain text. The first line is the subject (an optional
// "Subject:" prefix is stripped), the remaining lines are the body with
// line breaks preserved verbatim. Placeholders use $name or ${name} and
// are filled from recipient columns; unknown names are left as-is and
// reported so a typo in the template never silently blanks out text.
//
// Rendering also produces an HTML alternative from the body: URLs become
// links, line breaks become hard breaks, and the result is sanitized
// before sending.
package mailer
