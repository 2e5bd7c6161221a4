// Package analyzers provides all custom static analyzers for wikipeople.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/wikipeople/tools/wplint/analyzers/loopcall"
	"github.com/ersonp/wikipeople/tools/wplint/analyzers/regexloop"
	"github.com/ersonp/wikipeople/tools/wplint/analyzers/sqlconcat"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		sqlconcat.Analyzer,
		loopcall.Analyzer,
		regexloop.Analyzer,
	}
}
