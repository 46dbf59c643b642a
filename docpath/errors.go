package docpath

import "fmt"

// SyntaxError reports a malformed path expression. It names the offending
// fragment so callers can surface a diagnostic without re-parsing.
type SyntaxError struct {
	// Expr is the full expression that failed to parse.
	Expr string
	// Fragment is the slice of Expr where parsing stopped.
	Fragment string
	// Reason is a short human-readable cause.
	Reason string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("docpath: invalid path %q: %s at %q", e.Expr, e.Reason, e.Fragment)
}
