package recipients

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// EmailColumn is the header name the recipient file must contain.
// Matching is case-insensitive.
const EmailColumn = "email"

// Recipient is one row of the recipient file, keyed by header column.
// Every column becomes a substitution variable for the template.
type Recipient map[string]string

// Email returns the trimmed value of the email column.
func (r Recipient) Email() string {
	for k, v := range r {
		if strings.EqualFold(k, EmailColumn) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// Reader streams recipients from a CSV source in file order.
// It is not restartable; reopen the file to iterate again.
type Reader struct {
	src    io.Closer
	csv    *csv.Reader
	header []string
}

// Open opens a recipient CSV file and validates its header.
// The header must contain an email column.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recipients: open %s: %w", path, err)
	}

	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.src = f
	return r, nil
}

// NewReader wraps an in-memory or already-open CSV source.
// It reads and validates the header row immediately.
func NewReader(src io.Reader) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // ragged rows become empty cells
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("recipients: read header: %w", err)
	}

	found := false
	for _, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), EmailColumn) {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrMissingEmailColumn
	}

	return &Reader{csv: cr, header: header}, nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next recipient, or io.EOF after the last row.
// Cells beyond the header width are dropped; missing cells are empty.
func (r *Reader) Next() (Recipient, error) {
	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("recipients: read row: %w", err)
	}

	rec := make(Recipient, len(r.header))
	for i, col := range r.header {
		col = strings.TrimSpace(col)
		if i < len(row) {
			rec[col] = row[i]
		} else {
			rec[col] = ""
		}
	}
	return rec, nil
}

// All returns a range-over-func view of the remaining rows.
// Iteration stops at the first error; io.EOF is not yielded.
func (r *Reader) All() iter.Seq2[Recipient, error] {
	return func(yield func(Recipient, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Close closes the underlying file, if any.
func (r *Reader) Close() error {
	if r.src == nil {
		return nil
	}
	return r.src.Close()
}
