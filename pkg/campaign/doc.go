// Package campaign orchestrates a mail-merge run: it iterates recipients
// in file order, renders one message per recipient, delivers it through a
// mailer.Sender, and records exactly one result per recipient.
//
// The run is strictly sequential. A configurable delay separates
// consecutive sends; there is no pause after the last one. One
// recipient's delivery failure never aborts the run — it is recorded and
// iteration continues. Only recipient-file read errors and recorder I/O
// failures are fatal mid-run.
package campaign
