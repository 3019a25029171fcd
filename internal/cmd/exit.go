// Package cmd provides command implementations for the idremap CLI.
package cmd

// Exit codes.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates invalid configuration or a catalog
	// that does not match its schema.
	ExitValidationError = 2

	// ExitNotFound indicates a missing catalog, document or inventory,
	// or storage that could not be read or written.
	ExitNotFound = 5

	// ExitUnsupportedDocument indicates a document holding a tag kind the
	// rebuilder cannot handle.
	ExitUnsupportedDocument = 6
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitNotFound:
		return "Not Found"
	case ExitUnsupportedDocument:
		return "Unsupported Document"
	default:
		return "Unknown"
	}
}
