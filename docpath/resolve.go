package docpath

// Outcome is the result of walking a document along a parsed path. It is
// all-or-nothing: either the full chain of steps resolved and Value holds
// the addressed value, or resolution halted and FailedAt names the step
// that could not be applied.
type Outcome struct {
	Value    any
	Found    bool
	FailedAt int // index of the failing step; -1 when Found
}

// found wraps a resolved value.
func found(v any) Outcome {
	return Outcome{Value: v, Found: true, FailedAt: -1}
}

// missing marks resolution as halted at step i.
func missing(i int) Outcome {
	return Outcome{FailedAt: i}
}

// Resolve walks doc along steps, outermost container first.
//
// The document is expected in the shape produced by a JSON decoder:
// map[string]any for objects, []any for arrays, scalars for leaves. A key
// step against anything but a map, an index step against anything but a
// slice, an absent key, and an out-of-range index all yield a missing
// outcome — never an error or a panic. An empty step slice is the identity
// path and resolves to the document itself.
func Resolve(doc any, steps []Step) Outcome {
	current := doc
	for i, step := range steps {
		switch step.Kind {
		case StepKey:
			m, ok := current.(map[string]any)
			if !ok {
				return missing(i)
			}
			v, ok := m[step.Key]
			if !ok {
				return missing(i)
			}
			current = v
		case StepIndex:
			s, ok := current.([]any)
			if !ok {
				return missing(i)
			}
			n := step.Index
			if n < 0 {
				n += len(s)
			}
			if n < 0 || n >= len(s) {
				return missing(i)
			}
			current = s[n]
		default:
			return missing(i)
		}
	}
	return found(current)
}
