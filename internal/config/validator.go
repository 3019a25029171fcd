package config

import (
	"fmt"
	"strings"

	oerrors "github.com/coe-tools/idremap/internal/errors"
	"github.com/coe-tools/idremap/internal/output"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets errors.Is match ErrValidation.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validate checks cfg for values no run can use.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Jobs < 1 {
		errs = append(errs, ValidationError{Field: "jobs", Message: fmt.Sprintf("must be at least 1, got %d", cfg.Jobs)})
	}
	if _, err := output.ParseFormat(cfg.Report); err != nil {
		errs = append(errs, ValidationError{Field: "report", Message: err.Error()})
	}
	if strings.TrimSpace(cfg.InventoryKey) == "" {
		errs = append(errs, ValidationError{Field: "inventoryKey", Message: "must not be empty"})
	}
	if strings.TrimSpace(cfg.IDKey) == "" {
		errs = append(errs, ValidationError{Field: "idKey", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
