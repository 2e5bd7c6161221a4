package ports

import (
	"errors"

	"github.com/ersonp/wikipeople/internal/domain/entities"
)

// ErrMalformedInput marks a line or row of operator-supplied input that doesn't
// parse. It is logged and skipped, never fatal.
var ErrMalformedInput = errors.New("malformed input")

// RuleLoader reads the keyword ruleset.
type RuleLoader interface {
	// LoadRules returns the valid rules in file order. Rows that don't parse come
	// back in malformed; err is set only when the ruleset can't be read at all.
	LoadRules() (rules []entities.KeywordRule, malformed []error, err error)
}
