package recipients

import "errors"

var (
	// ErrEmptyFile is returned when the recipient file has no header row.
	ErrEmptyFile = errors.New("recipients: file is empty")

	// ErrMissingEmailColumn is returned when the header lacks an email column.
	ErrMissingEmailColumn = errors.New("recipients: file must contain an 'email' column")
)
