// Package regexloop detects regular expressions compiled inside loops.
package regexloop

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// Analyzer detects regexp functions that compile their pattern on every call
// when they are called inside a loop.
var Analyzer = &analysis.Analyzer{
	Name:     "regexloop",
	Doc:      "detects regexp compilation inside loops, including regexp.Match helpers",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// compiling lists the regexp package functions that compile a pattern.
var compiling = map[string]bool{
	"Compile":          true,
	"MustCompile":      true,
	"CompilePOSIX":     true,
	"MustCompilePOSIX": true,
	"Match":            true,
	"MatchString":      true,
	"MatchReader":      true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			// Methods on *regexp.Regexp share names with the package
			// functions; only package-level functions compile.
			fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
			if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "regexp" {
				return true
			}
			if sig, ok := fn.Type().(*types.Signature); !ok || sig.Recv() != nil {
				return true
			}

			if compiling[fn.Name()] {
				pass.Reportf(call.Pos(),
					"regexp.%s compiles its pattern inside loop - compile once outside loop",
					fn.Name())
			}

			return true
		})
	})

	return nil, nil
}
