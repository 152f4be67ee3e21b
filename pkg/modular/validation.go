package modular

import (
	"fmt"
	"strings"
)

// ValidationResult collects the problems modules report from
// ValidateModule. Messages are prefixed with the reporting module's name.
type ValidationResult struct {
	current string
	errors  []string
}

func (r *ValidationResult) AddError(format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if r.current != "" {
		msg = r.current + ": " + msg
	}
	r.errors = append(r.errors, msg)
}

func (r *ValidationResult) IsEmpty() bool {
	return len(r.errors) == 0
}

func (r *ValidationResult) Errors() []string {
	return append([]string(nil), r.errors...)
}

// Err returns ErrValidationFailed listing every message, or nil.
func (r *ValidationResult) Err() error {
	if r.IsEmpty() {
		return nil
	}
	return ErrValidationFailed.
		WithDetail("errors", strings.Join(r.errors, "; ")).
		WithDetail("count", len(r.errors))
}

func (r *ValidationResult) scope(name string) {
	r.current = name
}
