package adapt

import "fmt"

// Validator checks or transforms an extracted value. Validate returns the
// value that should become the field's final value — a transforming
// validator returns a replacement, a checking validator returns its input
// unchanged. A non-nil error rejects the value.
type Validator interface {
	Validate(value any) (any, error)
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(value any) (any, error)

// Validate implements Validator.
func (f ValidatorFunc) Validate(value any) (any, error) { return f(value) }

// Predicate adapts a boolean check to the Validator interface. desc names
// the requirement and is embedded in the rejection message.
func Predicate(desc string, check func(value any) bool) Validator {
	return ValidatorFunc(func(value any) (any, error) {
		if !check(value) {
			return nil, fmt.Errorf("must be %s", desc)
		}
		return value, nil
	})
}
