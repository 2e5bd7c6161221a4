package sqlconcat_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/ersonp/wikipeople/tools/wplint/analyzers/sqlconcat"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, sqlconcat.Analyzer, "a")
}
