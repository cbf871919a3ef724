// Package timeutc provides a linter that keeps wall-clock times in UTC.
//
// It reports:
//   - time.Now() not immediately followed by .UTC()
//   - calls to (time.Time).Local()
//   - references to time.Local
//
// Calls are resolved through type information, so renamed imports of the
// time package are checked as well. A //nolint or //nolint:timeutc comment on
// the same or the preceding line suppresses a report.
package timeutc

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	msgNow      = "time.Now() should be followed by .UTC() for timezone consistency"
	msgLocal    = "(time.Time).Local() converts to the server timezone; keep times in UTC"
	msgLocalVar = "time.Local is the server timezone; use time.UTC"
)

// Analyzer is the timeutc analyzer.
var Analyzer = &analysis.Analyzer{
	Name:     "timeutc",
	Doc:      "checks that wall-clock times stay in UTC",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	suppressed := nolintLines(pass)

	// time.Now() calls that are the receiver of .UTC()
	withUTC := make(map[*ast.CallExpr]bool)
	insp.Preorder([]ast.Node{(*ast.SelectorExpr)(nil)}, func(n ast.Node) {
		sel := n.(*ast.SelectorExpr)
		if sel.Sel.Name != "UTC" {
			return
		}
		if call, ok := ast.Unparen(sel.X).(*ast.CallExpr); ok && isTimeFunc(pass, call, "Now") {
			withUTC[call] = true
		}
	})

	report := func(n ast.Node, msg string) {
		pos := pass.Fset.Position(n.Pos())
		if suppressed[lineKey{pos.Filename, pos.Line}] {
			return
		}
		pass.Reportf(n.Pos(), "%s", msg)
	}

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil), (*ast.SelectorExpr)(nil)}, func(n ast.Node) {
		switch n := n.(type) {
		case *ast.CallExpr:
			if isTimeFunc(pass, n, "Now") && !withUTC[n] {
				report(n, msgNow)
			}
			if isTimeMethod(pass, n, "Local") {
				report(n, msgLocal)
			}
		case *ast.SelectorExpr:
			if obj, ok := pass.TypesInfo.Uses[n.Sel].(*types.Var); ok && isTimePkg(obj.Pkg()) && obj.Name() == "Local" {
				report(n, msgLocalVar)
			}
		}
	})

	return nil, nil
}

// isTimeFunc reports whether call invokes the package-level function time.<name>.
func isTimeFunc(pass *analysis.Pass, call *ast.CallExpr, name string) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	return ok && isTimePkg(fn.Pkg()) && fn.Type().(*types.Signature).Recv() == nil
}

// isTimeMethod reports whether call invokes the method time.Time.<name>.
func isTimeMethod(pass *analysis.Pass, call *ast.CallExpr, name string) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != name {
		return false
	}
	selection, ok := pass.TypesInfo.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return false
	}
	return isTimePkg(selection.Obj().Pkg())
}

func isTimePkg(pkg *types.Package) bool {
	return pkg != nil && pkg.Path() == "time"
}

type lineKey struct {
	file string
	line int
}

// nolintLines returns the lines covered by a //nolint or //nolint:timeutc
// comment: the comment's own line and the line after it.
func nolintLines(pass *analysis.Pass) map[lineKey]bool {
	lines := make(map[lineKey]bool)
	for _, file := range pass.Files {
		for _, cg := range file.Comments {
			for _, c := range cg.List {
				if !appliesToTimeUTC(c.Text) {
					continue
				}
				pos := pass.Fset.Position(c.Pos())
				lines[lineKey{pos.Filename, pos.Line}] = true
				lines[lineKey{pos.Filename, pos.Line + 1}] = true
			}
		}
	}
	return lines
}

func appliesToTimeUTC(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(comment, "//"))
	if !strings.HasPrefix(text, "nolint") {
		return false
	}
	rest := strings.TrimPrefix(text, "nolint")
	if !strings.HasPrefix(rest, ":") {
		return true
	}
	names, _, _ := strings.Cut(strings.TrimPrefix(rest, ":"), " ")
	for _, name := range strings.Split(names, ",") {
		if name == "timeutc" {
			return true
		}
	}
	return false
}
