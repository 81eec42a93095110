// Package middleend wires the type checker and the TAC lowerer into the
// single entrypoint a driver calls: type-check, then lower iff type
// checking succeeded.
package middleend

import (
	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/diagnostics"
	"github.com/Leeingnyo/snupl-scanning/internal/lower"
	"github.com/Leeingnyo/snupl-scanning/internal/typechecker"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// Result is what a successful run produces: the lowered code block for
// the module and for every nested procedure.
type Result struct {
	TAC *lower.Result
}

// Run type-checks mod and, only on success, lowers it to TAC. A non-nil
// diagnostic means the tree was rejected and Result is nil; the lowerer
// assumes a type-clean tree and is never invoked on a failing one.
func Run(mod *ast.Module, tm *types.Manager) (*Result, *diagnostics.Diagnostic) {
	if diag := typechecker.Check(mod, tm); diag != nil {
		return nil, diag
	}
	l := lower.New(tm)
	return &Result{TAC: l.Run(mod)}, nil
}
