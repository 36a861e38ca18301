package shiftsat

import (
	"errors"
	"fmt"
)

// ErrVariableConflict is returned when a variable is redeclared under the
// same name with different parameters — the interning discipline described
// in the data model invariants.
var ErrVariableConflict = errors.New("shiftsat: variable redeclared with conflicting parameters")

// ConfigError reports a problem with the compiler's input configuration
// (Member/ShiftPattern/CoverageRequirement/Rule declarations) that prevents
// any SolverRequest from being produced.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("shiftsat: configuration error on %s: %s", e.Field, e.Reason)
}

func newConfigError(field, reason string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(reason, args...)}
}

// RuleError wraps a rule-specific pre-solve impossibility (e.g. conflicting
// mandatory bounds) with the offending rule's name.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("shiftsat: rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

func newRuleError(rule string, err error) error {
	return &RuleError{Rule: rule, Err: err}
}
