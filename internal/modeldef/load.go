// Package modeldef loads declarative model definition files (JSON or HCL)
// and compiles them into resolvable adapt.Model values.
package modeldef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/caxiam/model-api/api"
)

// LoadFile reads a model definition file. The format is chosen by
// extension: .json decodes directly into the schema structs, .hcl decodes
// through the HCL block grammar below.
func LoadFile(path string) (*api.Schema, error) {
	switch filepath.Ext(path) {
	case ".json":
		return loadJSON(path)
	case ".hcl":
		return loadHCL(path)
	default:
		return nil, fmt.Errorf("modeldef: unsupported definition format %q (want .json or .hcl)", filepath.Ext(path))
	}
}

func loadJSON(path string) (*api.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modeldef: read %s: %w", path, err)
	}
	var schema api.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("modeldef: decode %s: %w", path, err)
	}
	return &schema, nil
}

// HCL grammar:
//
//	version = "v1"
//
//	model "Account" {
//	  field "id" {
//	    path     = "[account][id]"
//	    type     = "integer"
//	    required = true
//	  }
//	}
type hclSchema struct {
	Version string     `hcl:"version,optional"`
	Models  []hclModel `hcl:"model,block"`
}

type hclModel struct {
	Name   string     `hcl:"name,label"`
	Fields []hclField `hcl:"field,block"`
}

type hclField struct {
	Name     string    `hcl:"name,label"`
	Path     string    `hcl:"path,optional"`
	Type     string    `hcl:"type,optional"`
	Missing  cty.Value `hcl:"missing,optional"`
	Required bool      `hcl:"required,optional"`
	Nullable *bool     `hcl:"nullable,optional"`
	Format   string    `hcl:"format,optional"`
	Model    string    `hcl:"model,optional"`
}

func loadHCL(path string) (*api.Schema, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("modeldef: parse %s: %s", path, diags.Error())
	}

	var raw hclSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("modeldef: decode %s: %s", path, diags.Error())
	}

	schema := &api.Schema{Version: raw.Version}
	for _, m := range raw.Models {
		ms := api.ModelSchema{Name: m.Name}
		for _, f := range m.Fields {
			fs := api.FieldSchema{
				Name:     f.Name,
				Path:     f.Path,
				Type:     f.Type,
				Required: f.Required,
				Nullable: f.Nullable,
				Format:   f.Format,
				Model:    f.Model,
			}
			if !f.Missing.IsNull() {
				native, err := ctyToNative(f.Missing)
				if err != nil {
					return nil, fmt.Errorf("modeldef: %s: field %q: missing value: %w", path, f.Name, err)
				}
				fs.Missing = native
			}
			ms.Fields = append(ms.Fields, fs)
		}
		schema.Models = append(schema.Models, ms)
	}
	return schema, nil
}
