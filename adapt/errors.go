package adapt

import "fmt"

// MissingFieldError reports that a field's path reached a dead end in the
// document and the field was neither defaulted nor tolerant of a miss.
type MissingFieldError struct {
	// Field is the attribute name the descriptor was registered under.
	Field string
	// Path is the descriptor's path expression.
	Path string
	// Step is the bracket-syntax rendering of the step that failed.
	Step string
	// StepIndex is the position of the failing step within the path.
	StepIndex int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("adapt: field %q: path %q not found (failed at step %d %s)",
		e.Field, e.Path, e.StepIndex, e.Step)
}

// CoercionError reports that a found value could not be converted to the
// field's declared kind. The raw value is preserved for diagnostics.
type CoercionError struct {
	Field string
	Value any
	Kind  Kind
	Cause error
}

func (e *CoercionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("adapt: field %q: cannot coerce %v (%T) to %s: %v",
			e.Field, e.Value, e.Value, e.Kind, e.Cause)
	}
	return fmt.Sprintf("adapt: field %q: cannot coerce %v (%T) to %s",
		e.Field, e.Value, e.Value, e.Kind)
}

func (e *CoercionError) Unwrap() error { return e.Cause }

// ValidationError reports that a field's validator rejected the coerced
// value. The rejected value is preserved for diagnostics.
type ValidationError struct {
	Field string
	Value any
	Cause error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("adapt: field %q: value %v rejected: %v", e.Field, e.Value, e.Cause)
	}
	return fmt.Sprintf("adapt: field %q: value %v rejected", e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Cause }
