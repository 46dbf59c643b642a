package modeldef

import (
	"fmt"
	"strings"

	"github.com/caxiam/model-api/adapt"
	"github.com/caxiam/model-api/api"
	"github.com/caxiam/model-api/docpath"
)

// Compile turns every model declared in the schema into an adapt.Model and
// registers each one, so nested fields can reference sibling models by
// name regardless of declaration order. The returned map is keyed by model
// name.
func Compile(schema *api.Schema) (map[string]*adapt.Model, error) {
	models := make(map[string]*adapt.Model, len(schema.Models))
	for _, ms := range schema.Models {
		if ms.Name == "" {
			return nil, fmt.Errorf("modeldef: model with empty name")
		}
		if _, dup := models[ms.Name]; dup {
			return nil, fmt.Errorf("modeldef: duplicate model %q", ms.Name)
		}
		m, err := compileModel(ms)
		if err != nil {
			return nil, err
		}
		models[ms.Name] = m
		adapt.Register(m)
	}
	return models, nil
}

func compileModel(ms api.ModelSchema) (*adapt.Model, error) {
	fields := adapt.Fields{}
	for _, fs := range ms.Fields {
		if fs.Name == "" {
			return nil, fmt.Errorf("modeldef: model %q: field with empty name", ms.Name)
		}
		if _, dup := fields[fs.Name]; dup {
			return nil, fmt.Errorf("modeldef: model %q: duplicate field %q", ms.Name, fs.Name)
		}
		// Surface bad paths at compile time rather than on first load.
		if _, err := docpath.Parse(fs.Path); err != nil {
			return nil, fmt.Errorf("modeldef: model %q: field %q: %w", ms.Name, fs.Name, err)
		}
		f, err := compileField(ms.Name, fs)
		if err != nil {
			return nil, err
		}
		fields[fs.Name] = f
	}
	return adapt.NewModel(ms.Name, fields), nil
}

func compileField(model string, fs api.FieldSchema) (*adapt.Field, error) {
	var opts []adapt.Option
	if fs.Missing != nil {
		opts = append(opts, adapt.Missing(fs.Missing))
	}
	if fs.Required {
		opts = append(opts, adapt.Required())
	}
	if fs.Nullable != nil {
		opts = append(opts, adapt.Nullable(*fs.Nullable))
	}
	if fs.Format != "" {
		opts = append(opts, adapt.DateLayout(fs.Format))
	}

	switch strings.ToLower(fs.Type) {
	case "", "raw":
		return adapt.Raw(fs.Path, opts...), nil
	case "string":
		return adapt.String(fs.Path, opts...), nil
	case "integer", "int":
		return adapt.Integer(fs.Path, opts...), nil
	case "float", "number":
		return adapt.Float(fs.Path, opts...), nil
	case "boolean", "bool":
		return adapt.Boolean(fs.Path, opts...), nil
	case "decimal":
		return adapt.Decimal(fs.Path, opts...), nil
	case "date":
		return adapt.Date(fs.Path, opts...), nil
	case "list":
		return adapt.List(fs.Path, opts...), nil
	case "nested":
		if fs.Model == "" {
			return nil, fmt.Errorf("modeldef: model %q: nested field %q names no model", model, fs.Name)
		}
		return adapt.NestedNamed(fs.Model, fs.Path, opts...), nil
	}
	return nil, fmt.Errorf("modeldef: model %q: field %q: unknown type %q", model, fs.Name, fs.Type)
}
