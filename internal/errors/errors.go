// Package errors provides sentinel errors and detailed error rendering for idremap.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path or URL involved (optional).
	Location string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}

	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewCatalogError creates a catalog construction error with details.
// cause should wrap ErrSchemaMismatch, ErrMalformedRecord or ErrIoUnavailable.
func NewCatalogError(message, location, hint string, cause error) error {
	return &DetailError{
		Type:     "catalog construction failed",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    cause,
	}
}

// NewDocumentError creates a per-document processing error with details.
func NewDocumentError(message, location string, context map[string]string, cause error) error {
	return &DetailError{
		Type:     "document processing failed",
		Message:  message,
		Location: location,
		Context:  context,
		Cause:    cause,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, hint string) error {
	return &DetailError{
		Type:    "validation failed",
		Message: message,
		Hint:    hint,
		Cause:   ErrValidation,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
