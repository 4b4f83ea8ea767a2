package formula

import (
	"fmt"
	"strings"
)

// ValidationError reports a formula that failed lexing, parsing or the
// node allow-list, or an evaluation attempted with missing inputs.
type ValidationError struct {
	Formula string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid formula %q: %s", e.Formula, e.Reason)
}

func validationErrorf(formula, format string, args ...any) *ValidationError {
	return &ValidationError{Formula: formula, Reason: fmt.Sprintf(format, args...)}
}

// CircularDependencyError reports a cycle in the component dependency
// graph. Path lists the component codes along the cycle, ending where it
// started.
type CircularDependencyError struct {
	Path []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency: %s", strings.Join(e.Path, " -> "))
}
