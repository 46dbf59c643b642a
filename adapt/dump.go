package adapt

import (
	"fmt"

	"github.com/caxiam/model-api/docpath"
)

// Dump structures flat attribute values back into a nested document, the
// inverse of Load: each value is planted at the location its field's path
// addresses. Attribute names without a declared field are skipped, the
// Absent sentinel is skipped, and a field with the identity path cannot be
// serialized. Index steps create slices grown with nil padding; negative
// indices are not valid serialization targets.
func (m *Model) Dump(attrs map[string]any) (map[string]any, error) {
	out := map[string]any{}
	for _, attr := range m.fieldNames {
		value, ok := attrs[attr]
		if !ok || value == Absent {
			continue
		}
		f := m.fields[attr]
		if f.pathErr != nil {
			return nil, f.pathErr
		}
		if len(f.steps) == 0 {
			return nil, fmt.Errorf("adapt: field %q: identity path cannot be serialized", attr)
		}
		merged, err := assign(out, f.steps, value)
		if err != nil {
			return nil, fmt.Errorf("adapt: field %q: %w", attr, err)
		}
		out = merged.(map[string]any)
	}
	return out, nil
}

// assign plants value at the location steps address inside obj, creating
// intermediate containers as needed, and returns the (possibly newly
// created) container.
func assign(obj any, steps []docpath.Step, value any) (any, error) {
	step := steps[0]
	switch container := obj.(type) {
	case map[string]any:
		if step.Kind == docpath.StepIndex {
			return nil, fmt.Errorf("cannot apply index %d to an object", step.Index)
		}
		existing, occupied := container[step.Key]
		if !occupied {
			built, err := build(steps[1:], value)
			if err != nil {
				return nil, err
			}
			container[step.Key] = built
			return container, nil
		}
		if len(steps) == 1 {
			return nil, fmt.Errorf("key %q already occupied", step.Key)
		}
		merged, err := assign(existing, steps[1:], value)
		if err != nil {
			return nil, err
		}
		container[step.Key] = merged
		return container, nil

	case []any:
		if step.Kind != docpath.StepIndex {
			return nil, fmt.Errorf("cannot apply key %q to an array", step.Key)
		}
		return assignAt(container, step.Index, steps[1:], value)

	case nil:
		return build(steps, value)

	default:
		return nil, fmt.Errorf("cannot descend into scalar %v", obj)
	}
}

// assignAt plants value at position within array, padding with nils up to
// the position if the array is shorter.
func assignAt(array []any, position int, rest []docpath.Step, value any) ([]any, error) {
	if position < 0 {
		return nil, fmt.Errorf("negative index %d is not a serialization target", position)
	}
	for len(array) < position+1 {
		array = append(array, nil)
	}

	switch existing := array[position].(type) {
	case nil:
		built, err := build(rest, value)
		if err != nil {
			return nil, err
		}
		array[position] = built
	case map[string]any:
		if len(rest) == 0 {
			return nil, fmt.Errorf("position %d already occupied", position)
		}
		merged, err := assign(existing, rest, value)
		if err != nil {
			return nil, err
		}
		array[position] = merged
	default:
		return nil, fmt.Errorf("position %d already occupied", position)
	}
	return array, nil
}

// build creates the container chain for the remaining steps, innermost
// value first.
func build(steps []docpath.Step, value any) (any, error) {
	v := value
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if step.Kind == docpath.StepIndex {
			if step.Index < 0 {
				return nil, fmt.Errorf("negative index %d is not a serialization target", step.Index)
			}
			s := make([]any, step.Index+1)
			s[step.Index] = v
			v = s
		} else {
			v = map[string]any{step.Key: v}
		}
	}
	return v, nil
}
