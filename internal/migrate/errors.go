package migrate

import "fmt"

// RunError reports the documents that failed in an otherwise completed run.
type RunError struct {
	Failed int
	Total  int
	Errs   []error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%d of %d documents failed", e.Failed, e.Total)
}

// Unwrap exposes every document error to errors.Is and errors.As.
func (e *RunError) Unwrap() []error {
	return e.Errs
}

func newRunError(r *Report) error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, len(failed))
	for i, d := range failed {
		errs[i] = fmt.Errorf("%s: %w", d.URL, d.err)
	}
	return &RunError{Failed: len(failed), Total: len(r.Documents), Errs: errs}
}
