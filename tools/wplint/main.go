// wplint checks wikipeople for SQL built from strings and for per-item calls
// that have a batch or precompiled alternative.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/wikipeople/tools/wplint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
