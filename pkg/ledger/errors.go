package ledger

import (
	"errors"
	"fmt"
)

// Parse errors. Every one of them aborts the upload.
var (
	ErrEmptyLedger         = errors.New("ledger has no transactions")
	ErrMissingColumn       = errors.New("required column not found")
	ErrInvalidDate         = errors.New("invalid purchase date")
	ErrMixedDateOrder      = errors.New("purchase dates mix day-first and month-first")
	ErrInvalidValue        = errors.New("invalid total value")
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
	ErrNoSheets            = errors.New("spreadsheet has no sheets")
	ErrMalformedFile       = errors.New("malformed ledger file")
)

// ParseError locates a parse failure in the uploaded file
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
