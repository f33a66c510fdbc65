package rules

import "fmt"

// ValidationError is the expected, non-fatal failure class: a placement or
// move that the rules reject. Validate functions return it instead of
// panicking so callers can probe legality cheaply.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// RuleViolationError is returned when an Apply function receives input that
// fails validation. Callers are expected to validate first, so seeing this
// error signals an ordering bug in the calling layer, not a user mistake.
type RuleViolationError struct {
	Op  string
	Err error
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("%s: rule violation: %v", e.Op, e.Err)
}

func (e *RuleViolationError) Unwrap() error {
	return e.Err
}
