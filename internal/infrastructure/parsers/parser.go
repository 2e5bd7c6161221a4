// Package parsers reads the plain-text inputs of the pipeline: keyword rulesets
// and candidate lists.
package parsers

import (
	"fmt"

	"github.com/ersonp/wikipeople/internal/domain/ports"
)

// FormatError reports an input line or row that doesn't parse. Callers log it
// and carry on with the next line.
type FormatError struct {
	Line   int    // 1-indexed, 0 if unknown
	Text   string // The offending input
	Reason string
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Text != "" {
		msg = fmt.Sprintf("%s: %q", e.Reason, e.Text)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Unwrap lets callers match any FormatError with ports.ErrMalformedInput.
func (e *FormatError) Unwrap() error {
	return ports.ErrMalformedInput
}
