package adapt

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the target type a field coerces its extracted value into.
type Kind int

const (
	// KindRaw performs no conversion.
	KindRaw Kind = iota
	KindString
	KindInteger
	KindFloat
	KindBoolean
	KindDecimal
	KindDate
	KindList
	KindNested
	KindFunc
)

var kindNames = map[Kind]string{
	KindRaw:     "raw",
	KindString:  "string",
	KindInteger: "integer",
	KindFloat:   "float",
	KindBoolean: "boolean",
	KindDecimal: "decimal",
	KindDate:    "date",
	KindList:    "list",
	KindNested:  "nested",
	KindFunc:    "func",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// The converters below accept the value shapes JSON decoders actually
// produce: ojg yields int64/float64, encoding/json yields float64 or
// json.Number. Plain Go ints show up when callers hand in hand-built
// documents.

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("not an integral number")
		}
		return int64(n), nil
	case float32:
		return toInt64(float64(n))
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not an integer literal")
		}
		return i, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("not an integer literal")
		}
		return i, nil
	}
	return 0, fmt.Errorf("unsupported source type")
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("not a numeric literal")
		}
		return f, nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a numeric literal")
		}
		return f, nil
	}
	return 0, fmt.Errorf("unsupported source type")
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case json.Number:
		return s.String(), nil
	}
	return "", fmt.Errorf("unsupported source type")
}

func toBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, fmt.Errorf("not a boolean literal")
		}
		return parsed, nil
	case int:
		return b != 0, nil
	case int64:
		return b != 0, nil
	case float64:
		return b != 0, nil
	}
	return false, fmt.Errorf("unsupported source type")
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch d := v.(type) {
	case string:
		dec, err := decimal.NewFromString(d)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("not a decimal literal")
		}
		return dec, nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case float64:
		return decimal.NewFromFloat(d), nil
	case json.Number:
		return toDecimal(d.String())
	case decimal.Decimal:
		return d, nil
	}
	return decimal.Decimal{}, fmt.Errorf("unsupported source type")
}

func toDate(v any, layout string) (time.Time, error) {
	switch d := v.(type) {
	case string:
		t, err := time.Parse(layout, d)
		if err != nil {
			return time.Time{}, fmt.Errorf("does not match layout %q", layout)
		}
		return t, nil
	case time.Time:
		return d, nil
	}
	return time.Time{}, fmt.Errorf("unsupported source type")
}

// toList wraps a scalar into a one-element slice and passes slices through,
// so list fields tolerate endpoints that collapse single-element arrays.
func toList(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return []any{v}
}
