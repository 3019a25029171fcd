package catalog

import (
	"fmt"
	"strings"

	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// SchemaMismatchError indicates a source lacks required columns.
type SchemaMismatchError struct {
	// Source is the name of the tabular source.
	Source string

	// Missing lists the absent columns in schema order.
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("source %q: missing column(s) %s", e.Source, strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return oerrors.ErrSchemaMismatch
}

// MalformedRecordError indicates a row value that does not parse as its column type.
type MalformedRecordError struct {
	Source string

	// Row is the 1-based data row number (the header is row 0).
	Row    int
	Column string
	Value  string
	Cause  error
}

func (e *MalformedRecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("source %q row %d: %v", e.Source, e.Row, e.Cause)
	}
	return fmt.Sprintf("source %q row %d: column %q value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Cause)
}

// Unwrap exposes both the sentinel and the parse error.
func (e *MalformedRecordError) Unwrap() []error {
	return []error{oerrors.ErrMalformedRecord, e.Cause}
}

// SourceError indicates a source could not be loaded at all.
type SourceError struct {
	Source string
	Cause  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %q unavailable: %v", e.Source, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying I/O error.
func (e *SourceError) Unwrap() []error {
	return []error{oerrors.ErrIoUnavailable, e.Cause}
}
