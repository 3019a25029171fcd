package cmdutil

import (
	"errors"
	"fmt"

	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/migrate"
	"github.com/coe-tools/idremap/internal/output"
)

// PrintError prints err in a user-friendly format. A *DetailError is
// printed as-is to keep its multi-line layout; other errors go through the
// logger.
func PrintError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg)
		output.Details(detail.Error())
		return
	}
	output.Error(msg, "error", err)
}

// PrintRunErrors prints every failed document of a run.
func PrintRunErrors(report *migrate.Report) {
	failed := report.Failed()
	if len(failed) == 0 {
		return
	}
	output.Error(fmt.Sprintf("%d of %d documents failed", len(failed), len(report.Documents)))
	for _, d := range failed {
		output.DocumentLogger(d.URL).Error(d.Err().Error())
	}
}
