package cmd

import (
	"errors"

	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// exitError wraps err with the exit code its sentinels map to.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Err: err, Code: ExitCodeFromError(err)}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, oerrors.ErrValidation),
		errors.Is(err, oerrors.ErrSchemaMismatch),
		errors.Is(err, oerrors.ErrMalformedRecord):
		return ExitValidationError
	case errors.Is(err, oerrors.ErrUnsupportedTagKind):
		return ExitUnsupportedDocument
	case errors.Is(err, oerrors.ErrNotFound),
		errors.Is(err, oerrors.ErrIoUnavailable):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
