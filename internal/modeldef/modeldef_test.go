package modeldef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caxiam/model-api/adapt"
	"github.com/caxiam/model-api/api"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const hclDefinition = `
version = "v1"

model "InvoiceDef" {
  field "number" {
    path     = "[invoice][number]"
    type     = "integer"
    required = true
  }
  field "status" {
    path    = "[invoice][status]"
    type    = "string"
    missing = "draft"
  }
  field "issued" {
    path   = "[invoice][issued]"
    type   = "date"
    format = "2006-01-02"
  }
  field "lines" {
    path  = "[invoice][lines]"
    type  = "nested"
    model = "LineDef"
  }
}

model "LineDef" {
  field "sku" {
    path = "[sku]"
    type = "string"
  }
  field "qty" {
    path    = "[qty]"
    type    = "integer"
    missing = 1
  }
}
`

const jsonDefinition = `{
  "version": "v1",
  "models": [
    {
      "name": "InvoiceDefJSON",
      "fields": [
        {"name": "number", "path": "[invoice][number]", "type": "integer", "required": true},
        {"name": "status", "path": "[invoice][status]", "type": "string", "missing": "draft"},
        {"name": "issued", "path": "[invoice][issued]", "type": "date", "format": "2006-01-02"}
      ]
    }
  ]
}`

func invoiceDoc() map[string]any {
	return map[string]any{
		"invoice": map[string]any{
			"number": int64(1042),
			"issued": "2024-01-15",
			"lines": []any{
				map[string]any{"sku": "A-1"},
				map[string]any{"sku": "B-2", "qty": int64(3)},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

func TestLoadFile_HCL(t *testing.T) {
	path := writeFile(t, "models.hcl", hclDefinition)
	schema, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "v1", schema.Version)
	require.Len(t, schema.Models, 2)
	assert.Equal(t, "InvoiceDef", schema.Models[0].Name)
	require.Len(t, schema.Models[0].Fields, 4)

	// HCL defaults arrive in JSON-decoder shapes.
	assert.Equal(t, "draft", schema.Models[0].Fields[1].Missing)
	assert.Equal(t, int64(1), schema.Models[1].Fields[1].Missing)
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "models.json", jsonDefinition)
	schema, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, schema.Models, 1)
	assert.Equal(t, "InvoiceDefJSON", schema.Models[0].Name)
}

func TestLoadFile_UnknownExtension(t *testing.T) {
	path := writeFile(t, "models.yaml", "")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported definition format")
}

func TestLoadFile_BadHCL(t *testing.T) {
	path := writeFile(t, "broken.hcl", `model "X" {`)
	_, err := LoadFile(path)
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// Compiling
// ---------------------------------------------------------------------------

func TestCompile_ExtractsThroughCompiledModel(t *testing.T) {
	path := writeFile(t, "models.hcl", hclDefinition)
	schema, err := LoadFile(path)
	require.NoError(t, err)

	models, err := Compile(schema)
	require.NoError(t, err)
	invoice := models["InvoiceDef"]
	require.NotNil(t, invoice)

	inst, err := invoice.Load(invoiceDoc())
	require.NoError(t, err)

	number, ok := inst.Int("number")
	require.True(t, ok)
	assert.Equal(t, int64(1042), number)

	status, _ := inst.String("status")
	assert.Equal(t, "draft", status, "missing default applies")
}

func TestCompile_NestedByName(t *testing.T) {
	path := writeFile(t, "models.hcl", hclDefinition)
	schema, err := LoadFile(path)
	require.NoError(t, err)
	models, err := Compile(schema)
	require.NoError(t, err)

	inst, err := models["InvoiceDef"].Load(invoiceDoc())
	require.NoError(t, err)

	lines, ok := inst.Get("lines")
	require.True(t, ok)
	require.IsType(t, []*adapt.Instance(nil), lines)
	sku, _ := lines.([]*adapt.Instance)[0].String("sku")
	assert.Equal(t, "A-1", sku)
	qty, _ := lines.([]*adapt.Instance)[0].Int("qty")
	assert.Equal(t, int64(1), qty, "line default applies")
}

func TestCompile_RejectsBadPath(t *testing.T) {
	schema := &api.Schema{Models: []api.ModelSchema{{
		Name:   "Broken",
		Fields: []api.FieldSchema{{Name: "f", Path: "[oops", Type: "raw"}},
	}}}
	_, err := Compile(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid path")
}

func TestCompile_RejectsUnknownType(t *testing.T) {
	schema := &api.Schema{Models: []api.ModelSchema{{
		Name:   "Broken",
		Fields: []api.FieldSchema{{Name: "f", Path: "[x]", Type: "uuid"}},
	}}}
	_, err := Compile(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestCompile_RejectsDuplicateField(t *testing.T) {
	schema := &api.Schema{Models: []api.ModelSchema{{
		Name: "Broken",
		Fields: []api.FieldSchema{
			{Name: "f", Path: "[x]"},
			{Name: "f", Path: "[y]"},
		},
	}}}
	_, err := Compile(schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field")
}

// ---------------------------------------------------------------------------
// Format equivalence
// ---------------------------------------------------------------------------

func TestCompile_JSONAndHCLAgree(t *testing.T) {
	hclPath := writeFile(t, "models.hcl", `
model "AgreeHCL" {
  field "status" {
    path    = "[status]"
    type    = "string"
    missing = "open"
  }
  field "count" {
    path = "[count]"
    type = "integer"
  }
}
`)
	jsonPath := writeFile(t, "models.json", `{
  "models": [{
    "name": "AgreeJSON",
    "fields": [
      {"name": "status", "path": "[status]", "type": "string", "missing": "open"},
      {"name": "count", "path": "[count]", "type": "integer"}
    ]
  }]
}`)

	hclSchema, err := LoadFile(hclPath)
	require.NoError(t, err)
	jsonSchema, err := LoadFile(jsonPath)
	require.NoError(t, err)

	hclModels, err := Compile(hclSchema)
	require.NoError(t, err)
	jsonModels, err := Compile(jsonSchema)
	require.NoError(t, err)

	doc := map[string]any{"count": "5"}
	a, err := hclModels["AgreeHCL"].Load(doc)
	require.NoError(t, err)
	b, err := jsonModels["AgreeJSON"].Load(doc)
	require.NoError(t, err)
	assert.Equal(t, a.Attrs(), b.Attrs())
}
