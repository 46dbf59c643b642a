package api

// Schema is the root of a declarative model definition file. It declares
// one or more models that can be compiled into resolvable form.
type Schema struct {
	// Version of the model-api schema.
	Version string `json:"version,omitempty"`
	// Models declared in this file.
	Models []ModelSchema `json:"models"`
}

// ModelSchema declares a single model: a named set of field mappings.
type ModelSchema struct {
	// Name of the model. Nested fields reference models by this name.
	Name string `json:"name"`
	// Fields mapped by this model.
	Fields []FieldSchema `json:"fields"`
}

// FieldSchema declares one attribute mapping.
type FieldSchema struct {
	// Name of the attribute on the loaded instance.
	Name string `json:"name"`
	// Path is the bracket-path expression addressing the source value.
	// Empty means the identity path (the whole document).
	Path string `json:"path,omitempty"`
	// Type is the coercion kind: raw, string, integer, float, boolean,
	// decimal, date, list or nested. Defaults to raw.
	Type string `json:"type,omitempty"`
	// Missing is the default substituted when the path does not resolve.
	// A JSON null here is indistinguishable from "no default"; use Nullable
	// for fields whose resolved value may be null.
	Missing any `json:"missing,omitempty"`
	// Required makes an unresolved path a load error.
	Required bool `json:"required,omitempty"`
	// Nullable controls null passthrough (default true).
	Nullable *bool `json:"nullable,omitempty"`
	// Format is the time layout for date fields (e.g. "2006-01-02").
	Format string `json:"format,omitempty"`
	// Model names the nested model for fields of type nested.
	Model string `json:"model,omitempty"`
}
