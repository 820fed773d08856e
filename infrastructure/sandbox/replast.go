package sandbox

import "github.com/canonical/starlark/syntax"

// rewriteLastExprToUnderscore mirrors the interactive convention the
// original interpreter gets for free from mruby's REPL context (mirb):
// if the final top-level statement is a bare expression, rebind it to "_"
// so its value survives the eval and can be rendered as the result. This
// is exactly what github.com/canonical/starlark/repl does internally to
// support the same convention; ExecREPLChunk's own doc comment names that
// package as its intended (and only) caller.
func rewriteLastExprToUnderscore(f *syntax.File) {
	if len(f.Stmts) == 0 {
		return
	}
	last := len(f.Stmts) - 1
	exprStmt, ok := f.Stmts[last].(*syntax.ExprStmt)
	if !ok {
		return
	}
	f.Stmts[last] = &syntax.AssignStmt{
		Op:  syntax.EQ,
		LHS: &syntax.Ident{Name: "_"},
		RHS: exprStmt.X,
	}
}
