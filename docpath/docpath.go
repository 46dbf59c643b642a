// Package docpath parses and resolves bracket-path expressions against
// decoded JSON documents.
//
// A path expression is a concatenation of bracket groups with nothing in
// between, e.g. `[accounts][0][id]`. Each group is either an integer index
// (negative counts from the end of a sequence) or a verbatim mapping key.
// The empty expression is the identity path: it addresses the whole
// document.
//
// Parsing and resolution are pure functions. Resolution never mutates the
// document and folds container-type mismatches into "missing" rather than
// failing hard, so callers decide the policy for absent values.
package docpath

import "strconv"

// StepKind tags a Step as a key or index access.
type StepKind int

const (
	// StepKey is a mapping lookup by name.
	StepKey StepKind = iota
	// StepIndex is a sequence lookup by position.
	StepIndex
)

// Step is one parsed unit of a path expression.
type Step struct {
	Kind  StepKind
	Key   string // valid when Kind == StepKey
	Index int    // valid when Kind == StepIndex
}

// String renders the step back in bracket syntax.
func (s Step) String() string {
	if s.Kind == StepIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "[" + s.Key + "]"
}

// Parse converts a path expression into an ordered sequence of steps.
//
// The empty string parses to an empty step slice (identity). Any character
// outside a bracket pair, an empty bracket, or an unterminated bracket is a
// *SyntaxError. Key tokens are taken verbatim: no trimming, no case folding,
// no quote processing.
func Parse(expr string) ([]Step, error) {
	if expr == "" {
		return nil, nil
	}

	var steps []Step
	i := 0
	for i < len(expr) {
		if expr[i] != '[' {
			return nil, &SyntaxError{Expr: expr, Fragment: expr[i:], Reason: "character outside bracket group"}
		}
		end := i + 1
		for end < len(expr) && expr[end] != ']' && expr[end] != '[' {
			end++
		}
		if end >= len(expr) || expr[end] != ']' {
			return nil, &SyntaxError{Expr: expr, Fragment: expr[i:], Reason: "unterminated bracket group"}
		}
		token := expr[i+1 : end]
		if token == "" {
			return nil, &SyntaxError{Expr: expr, Fragment: "[]", Reason: "empty bracket group"}
		}
		step, err := classify(expr, token)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		i = end + 1
	}
	return steps, nil
}

// classify decides whether a bracket token is an index or a key. The index
// grammar is exactly `-?[0-9]+`; everything else is a verbatim key.
func classify(expr, token string) (Step, error) {
	if !matchesIndexGrammar(token) {
		return Step{Kind: StepKey, Key: token}, nil
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		// Matches the index grammar but overflows int. A huge literal must
		// not silently degrade into a mapping key.
		return Step{}, &SyntaxError{Expr: expr, Fragment: "[" + token + "]", Reason: "index overflows int"}
	}
	return Step{Kind: StepIndex, Index: n}, nil
}

func matchesIndexGrammar(token string) bool {
	digits := token
	if digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// MustParse is Parse for expressions known valid at compile time.
// It panics on a syntax error.
func MustParse(expr string) []Step {
	steps, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return steps
}
