// Package adapt maps decoded JSON documents onto flat, typed model
// attributes. A Field pairs a docpath expression with extraction policy
// (default value, miss tolerance, validation, target type); a Model is an
// ordered collection of named fields resolved together against one
// document.
//
// Fields and models are immutable after construction, so a single Model may
// serve any number of concurrent Load calls without locking.
package adapt

import (
	"fmt"

	"github.com/caxiam/model-api/docpath"
)

// Absent is the sentinel returned for a tolerated miss with no configured
// default. It is distinct from every real document value, including nil,
// and is terminal: it is never coerced and never validated.
var Absent = absent{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// DefaultDateLayout is the layout Date fields parse with unless overridden.
const DefaultDateLayout = "2006-01-02"

// Field is an immutable extraction descriptor: a path into the document
// plus the policy applied to whatever the path resolves to. Construct one
// with the kind constructors (String, Integer, Nested, ...) and attach it
// to a Model; a zero Field is not usable.
type Field struct {
	name    string // attribute name, set when the field joins a model
	path    string
	steps   []docpath.Step
	pathErr error

	kind       Kind
	missing    any
	hasMissing bool
	required   bool
	nullable   bool
	validator  Validator

	layout    string                // date fields
	fn        func(any) (any, error) // func fields
	model     *Model                // nested fields, direct reference
	modelName string                // nested fields, registry lookup
}

// Option configures a Field at construction time.
type Option func(*Field)

// Missing sets the value substituted when the path does not resolve. It
// applies whether or not the field is required.
func Missing(v any) Option {
	return func(f *Field) {
		f.missing = v
		f.hasMissing = true
	}
}

// Required makes an unresolved path an error instead of a tolerated miss.
func Required() Option {
	return func(f *Field) { f.required = true }
}

// Nullable controls whether a JSON null passes through unconverted.
// Fields are nullable by default; with Nullable(false) a null runs through
// coercion and fails there for every kind except raw.
func Nullable(allowed bool) Option {
	return func(f *Field) { f.nullable = allowed }
}

// Validate attaches a validator, invoked with the coerced value.
func Validate(v Validator) Option {
	return func(f *Field) { f.validator = v }
}

// DateLayout overrides the time layout used by Date fields.
func DateLayout(layout string) Option {
	return func(f *Field) { f.layout = layout }
}

func newField(path string, kind Kind, opts []Option) *Field {
	f := &Field{
		path:     path,
		kind:     kind,
		nullable: true,
		layout:   DefaultDateLayout,
	}
	f.steps, f.pathErr = docpath.Parse(path)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Raw extracts the addressed value without conversion.
func Raw(path string, opts ...Option) *Field { return newField(path, KindRaw, opts) }

// String coerces the addressed value to a string.
func String(path string, opts ...Option) *Field { return newField(path, KindString, opts) }

// Integer coerces the addressed value to an int64.
func Integer(path string, opts ...Option) *Field { return newField(path, KindInteger, opts) }

// Float coerces the addressed value to a float64.
func Float(path string, opts ...Option) *Field { return newField(path, KindFloat, opts) }

// Boolean coerces the addressed value to a bool.
func Boolean(path string, opts ...Option) *Field { return newField(path, KindBoolean, opts) }

// Decimal coerces the addressed value to an arbitrary-precision decimal.
func Decimal(path string, opts ...Option) *Field { return newField(path, KindDecimal, opts) }

// Date parses the addressed string value as a time.Time. The layout
// defaults to DefaultDateLayout and may be overridden with DateLayout.
func Date(path string, opts ...Option) *Field { return newField(path, KindDate, opts) }

// List coerces the addressed value to a []any, wrapping a lone scalar into
// a one-element slice.
func List(path string, opts ...Option) *Field { return newField(path, KindList, opts) }

// Func converts the addressed value with fn. An error from fn is reported
// as a coercion failure.
func Func(fn func(any) (any, error), path string, opts ...Option) *Field {
	f := newField(path, KindFunc, opts)
	f.fn = fn
	return f
}

// Nested loads the addressed value (an object, or a slice of objects
// loaded element-wise) into model.
func Nested(model *Model, path string, opts ...Option) *Field {
	f := newField(path, KindNested, opts)
	f.model = model
	return f
}

// NestedNamed is Nested with the model looked up in the registry at
// extraction time, allowing forward and cyclic references between models.
func NestedNamed(name string, path string, opts ...Option) *Field {
	f := newField(path, KindNested, opts)
	f.modelName = name
	return f
}

// Name returns the attribute name the field is registered under, or the
// empty string for a detached field.
func (f *Field) Name() string { return f.name }

// Path returns the field's path expression.
func (f *Field) Path() string { return f.path }

// named returns a copy of f bound to an attribute name, so the same
// descriptor value can appear in more than one model.
func (f *Field) named(name string) *Field {
	c := *f
	c.name = name
	return &c
}

// Extract resolves the field's path against doc and applies the field's
// policy. The returned error is one of *docpath.SyntaxError,
// *MissingFieldError, *CoercionError or *ValidationError.
func (f *Field) Extract(doc any) (any, error) {
	if f.pathErr != nil {
		return nil, f.pathErr
	}

	out := docpath.Resolve(doc, f.steps)
	if !out.Found {
		if f.hasMissing {
			return f.missing, nil
		}
		if !f.required {
			return Absent, nil
		}
		return nil, &MissingFieldError{
			Field:     f.name,
			Path:      f.path,
			Step:      f.steps[out.FailedAt].String(),
			StepIndex: out.FailedAt,
		}
	}

	value := out.Value
	if value == nil && f.nullable {
		// Null passes through without conversion, but the validator still
		// gets a say.
		return f.runValidator(nil)
	}

	coerced, err := f.coerce(value)
	if err != nil {
		return nil, &CoercionError{Field: f.name, Value: value, Kind: f.kind, Cause: err}
	}
	return f.runValidator(coerced)
}

func (f *Field) runValidator(v any) (any, error) {
	if f.validator == nil {
		return v, nil
	}
	replacement, err := f.validator.Validate(v)
	if err != nil {
		return nil, &ValidationError{Field: f.name, Value: v, Cause: err}
	}
	return replacement, nil
}

func (f *Field) coerce(v any) (any, error) {
	switch f.kind {
	case KindRaw:
		return v, nil
	case KindString:
		return toString(v)
	case KindInteger:
		return toInt64(v)
	case KindFloat:
		return toFloat64(v)
	case KindBoolean:
		return toBool(v)
	case KindDecimal:
		return toDecimal(v)
	case KindDate:
		return toDate(v, f.layout)
	case KindList:
		return toList(v), nil
	case KindNested:
		return f.coerceNested(v)
	case KindFunc:
		return f.fn(v)
	}
	return nil, fmt.Errorf("unknown kind")
}

func (f *Field) coerceNested(v any) (any, error) {
	model := f.model
	if model == nil {
		var ok bool
		model, ok = Lookup(f.modelName)
		if !ok {
			return nil, fmt.Errorf("model %q not registered", f.modelName)
		}
	}
	if list, ok := v.([]any); ok {
		instances := make([]*Instance, 0, len(list))
		for _, elem := range list {
			inst, err := model.Load(elem)
			if err != nil {
				return nil, err
			}
			instances = append(instances, inst)
		}
		return instances, nil
	}
	return model.Load(v)
}
