package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrSchemaMismatch indicates a tabular source lacks required columns.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrMalformedRecord indicates a tabular row has an unparseable value.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrIoUnavailable indicates a catalog source or document could not be read or written.
	ErrIoUnavailable = errors.New("i/o unavailable")

	// ErrUnsupportedTagKind indicates a tree node of a kind the rebuilder does not know.
	ErrUnsupportedTagKind = errors.New("unsupported tag kind")

	// ErrNotFound indicates a document, subtree, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid user input such as flags or config values.
	ErrValidation = errors.New("validation error")
)
