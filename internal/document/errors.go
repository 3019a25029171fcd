package document

import (
	"fmt"

	oerrors "github.com/coe-tools/idremap/internal/errors"
)

// IOError reports a failed read, write or listing.
type IOError struct {
	Op    string
	URL   string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Cause)
}

func (e *IOError) Unwrap() []error {
	return []error{oerrors.ErrIoUnavailable, e.Cause}
}

// DecodeError reports bytes that are not a usable document.
type DecodeError struct {
	URL   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.URL, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
