// Package sqlconcat detects SQL statements assembled from strings at run time.
package sqlconcat

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// Analyzer reports query calls whose SQL text is concatenated or formatted
// instead of being a constant with placeholders.
var Analyzer = &analysis.Analyzer{
	Name:     "sqlconcat",
	Doc:      "detects SQL built by string concatenation or fmt.Sprintf; pass values as query arguments",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// queryMethods take the SQL text as first argument, after the context for the
// *Context variants.
var queryMethods = map[string]bool{
	"Exec":            true,
	"ExecContext":     true,
	"Query":           true,
	"QueryContext":    true,
	"QueryRow":        true,
	"QueryRowContext": true,
	"Prepare":         true,
	"PrepareContext":  true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		call := n.(*ast.CallExpr)

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || !queryMethods[sel.Sel.Name] {
			return
		}

		query := sqlArg(pass, call)
		if query == nil {
			return
		}

		if built(pass, query) {
			pass.Reportf(query.Pos(),
				"SQL passed to %s is built at run time - use placeholders and query arguments",
				sel.Sel.Name)
		}
	})

	return nil, nil
}

// sqlArg returns the argument holding the SQL text, skipping a leading context.
func sqlArg(pass *analysis.Pass, call *ast.CallExpr) ast.Expr {
	for _, arg := range call.Args {
		if isContext(pass.TypesInfo.TypeOf(arg)) {
			continue
		}
		if isStringType(pass, arg) {
			return arg
		}
		return nil
	}
	return nil
}

// built reports whether expr is a non-constant concatenation or a Sprintf call.
func built(pass *analysis.Pass, expr ast.Expr) bool {
	if tv, ok := pass.TypesInfo.Types[expr]; ok && tv.Value != nil {
		return false
	}

	switch e := expr.(type) {
	case *ast.ParenExpr:
		return built(pass, e.X)
	case *ast.BinaryExpr:
		return e.Op == token.ADD
	case *ast.CallExpr:
		fn, ok := typeutil.Callee(pass.TypesInfo, e).(*types.Func)
		if !ok || fn.Pkg() == nil {
			return false
		}
		return fn.Pkg().Path() == "fmt" && fn.Name() == "Sprintf"
	}
	return false
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}

func isStringType(pass *analysis.Pass, expr ast.Expr) bool {
	tv := pass.TypesInfo.TypeOf(expr)
	if tv == nil {
		return false
	}

	basic, ok := tv.Underlying().(*types.Basic)
	if !ok {
		return false
	}

	return basic.Info()&types.IsString != 0
}
