package typechecker

import (
	"fmt"

	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/diagnostics"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// checkFunctionCall implements the Call/FunctionCall rule: arity must
// match, every argument type-checks, and each parameter's declared type
// must Match the corresponding argument's type. A mismatched argument
// fails with the argument's own token, not the call's.
func checkFunctionCall(f *ast.FunctionCall, tm *types.Manager) *diagnostics.Diagnostic {
	if len(f.Args) != f.Symbol.GetNParams() {
		return diagnostics.WrongArgumentCount(f.Token())
	}
	for i, arg := range f.Args {
		if d := checkExpr(arg, tm); d != nil {
			return d
		}
		param := f.Symbol.GetParam(i)
		if !param.GetDataType().Match(arg.GetType()) {
			return diagnostics.TypeMismatch(arg.Token(), fmt.Sprintf(
				"argument %d: expected %s, got %s", i+1, param.GetDataType(), arg.GetType()))
		}
	}
	return nil
}
