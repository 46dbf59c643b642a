package adapt

import (
	"context"
	"fmt"
	"sort"

	"github.com/ohler55/ojg/oj"
)

// Requester produces the raw JSON body a model is loaded from. The argument
// list is opaque to this package; it is forwarded unchanged from Connect.
type Requester interface {
	MakeRequest(ctx context.Context, args ...any) ([]byte, error)
}

// RequesterFunc adapts a plain function to the Requester interface.
type RequesterFunc func(ctx context.Context, args ...any) ([]byte, error)

// MakeRequest implements Requester.
func (f RequesterFunc) MakeRequest(ctx context.Context, args ...any) ([]byte, error) {
	return f(ctx, args...)
}

// Fields declares a model's attributes: attribute name to field descriptor.
type Fields map[string]*Field

// Model is an immutable set of named field descriptors resolved together
// against a single document. Field iteration order is the sorted attribute
// names, so load behavior is deterministic.
type Model struct {
	name       string
	fields     map[string]*Field
	fieldNames []string
	postLoad   func(*Instance) error
	requester  Requester
}

// ModelOption configures a Model at construction time.
type ModelOption func(*Model)

// WithPostLoad runs hook on every freshly loaded instance. A non-nil error
// from the hook fails the whole load.
func WithPostLoad(hook func(*Instance) error) ModelOption {
	return func(m *Model) { m.postLoad = hook }
}

// WithRequester supplies the hook Connect uses to fetch the raw document.
func WithRequester(r Requester) ModelOption {
	return func(m *Model) { m.requester = r }
}

// NewModel builds a model from its field declarations. Each descriptor is
// copied and bound to its attribute name, so one descriptor value may be
// shared between models.
func NewModel(name string, fields Fields, opts ...ModelOption) *Model {
	m := &Model{
		name:   name,
		fields: make(map[string]*Field, len(fields)),
	}
	for attr, f := range fields {
		m.fields[attr] = f.named(attr)
		m.fieldNames = append(m.fieldNames, attr)
	}
	sort.Strings(m.fieldNames)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// Field returns the descriptor bound to the given attribute name.
func (m *Model) Field(attr string) (*Field, bool) {
	f, ok := m.fields[attr]
	return f, ok
}

// FieldNames returns the model's attribute names in load order.
func (m *Model) FieldNames() []string {
	names := make([]string, len(m.fieldNames))
	copy(names, m.fieldNames)
	return names
}

// Load resolves every field against an already-decoded document and
// returns the populated instance. The first field error aborts the load;
// no partial instance is returned.
func (m *Model) Load(doc any) (*Instance, error) {
	inst := &Instance{model: m, attrs: make(map[string]any, len(m.fieldNames))}
	for _, attr := range m.fieldNames {
		value, err := m.fields[attr].Extract(doc)
		if err != nil {
			return nil, err
		}
		inst.attrs[attr] = value
	}
	if m.postLoad != nil {
		if err := m.postLoad(inst); err != nil {
			return nil, fmt.Errorf("adapt: model %q post-load: %w", m.name, err)
		}
	}
	return inst, nil
}

// Loads decodes a raw JSON body and loads the model from it.
func (m *Model) Loads(data []byte) (*Instance, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("adapt: model %q: decode response: %w", m.name, err)
	}
	return m.Load(doc)
}

// Connect fetches the raw document through the configured Requester and
// loads the model from it. args are passed through to the hook untouched.
func (m *Model) Connect(ctx context.Context, args ...any) (*Instance, error) {
	if m.requester == nil {
		return nil, fmt.Errorf("adapt: model %q has no requester", m.name)
	}
	body, err := m.requester.MakeRequest(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("adapt: model %q: make request: %w", m.name, err)
	}
	return m.Loads(body)
}

// Instance holds the resolved attribute values of one model load. It is
// ephemeral: one document, one instance, no state shared between loads.
type Instance struct {
	model *Model
	attrs map[string]any
}

// Model returns the model the instance was loaded from.
func (i *Instance) Model() *Model { return i.model }

// Get returns the attribute value. The second result is false when the
// attribute is not declared on the model.
func (i *Instance) Get(attr string) (any, bool) {
	v, ok := i.attrs[attr]
	return v, ok
}

// Has reports whether the attribute is declared and resolved to a real
// value, i.e. not the Absent sentinel.
func (i *Instance) Has(attr string) bool {
	v, ok := i.attrs[attr]
	return ok && v != Absent
}

// Attrs returns a copy of the attribute map.
func (i *Instance) Attrs() map[string]any {
	out := make(map[string]any, len(i.attrs))
	for k, v := range i.attrs {
		out[k] = v
	}
	return out
}

// String returns the attribute as a string. ok is false when the attribute
// is absent or not a string.
func (i *Instance) String(attr string) (string, bool) {
	s, ok := i.attrs[attr].(string)
	return s, ok
}

// Int returns the attribute as an int64.
func (i *Instance) Int(attr string) (int64, bool) {
	n, ok := i.attrs[attr].(int64)
	return n, ok
}

// Float returns the attribute as a float64.
func (i *Instance) Float(attr string) (float64, bool) {
	f, ok := i.attrs[attr].(float64)
	return f, ok
}

// Bool returns the attribute as a bool.
func (i *Instance) Bool(attr string) (bool, bool) {
	b, ok := i.attrs[attr].(bool)
	return b, ok
}
