package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/caxiam/model-api/adapt"
	"github.com/caxiam/model-api/internal/modeldef"
)

var (
	modelFile string
	modelName string
)

func init() {
	rootCmd.Flags().StringVarP(&modelFile, "model", "m", "", "Path to model definition (.json or .hcl)")
	rootCmd.Flags().StringVarP(&modelName, "name", "n", "", "Model to apply when the definition declares several")
}

var rootCmd = &cobra.Command{
	Use:   "model-api [document.json]",
	Short: "Map a JSON document onto flat, typed model attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if modelFile == "" {
			return fmt.Errorf("--model is required")
		}

		schema, err := modeldef.LoadFile(modelFile)
		if err != nil {
			return err
		}
		models, err := modeldef.Compile(schema)
		if err != nil {
			return err
		}
		model, err := pickModel(models)
		if err != nil {
			return err
		}

		data, err := readDocument(args[0])
		if err != nil {
			return err
		}
		inst, err := model.Loads(data)
		if err != nil {
			return err
		}

		fmt.Println(oj.JSON(display(inst.Attrs()), 2))
		return nil
	},
}

// pickModel chooses which declared model to apply: the --name flag wins,
// a single-model definition needs no flag.
func pickModel(models map[string]*adapt.Model) (*adapt.Model, error) {
	if modelName != "" {
		m, ok := models[modelName]
		if !ok {
			return nil, fmt.Errorf("model %q not declared in %s", modelName, modelFile)
		}
		return m, nil
	}
	if len(models) == 1 {
		for _, m := range models {
			return m, nil
		}
	}
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("definition declares %d models, pick one with --name (%s)",
		len(models), strings.Join(names, ", "))
}

func readDocument(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// display rewrites attribute values into JSON-printable shapes: decimals
// and dates become strings, nested instances become their attribute maps,
// the absent sentinel becomes its marker string.
func display(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = display(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = display(e)
		}
		return out
	case []*adapt.Instance:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = display(e.Attrs())
		}
		return out
	case *adapt.Instance:
		return display(val.Attrs())
	case decimal.Decimal:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		if v == adapt.Absent {
			return "<absent>"
		}
		return v
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
