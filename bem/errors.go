package bem

import "fmt"

// SyntaxError is a fatal problem in stylesheet which aborts transformation.
type SyntaxError struct {
	Reason string // Human readable reason, stable for callers to compare
	Line   int    // Source line of offending at-rule, 0 if unknown
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

func fatal(line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Reason: fmt.Sprintf(format, args...), Line: line}
}
