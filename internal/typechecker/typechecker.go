// Package typechecker implements the recursive type-checking predicate
// over the AST: it walks a scope's statement list and nested scopes in
// order, stopping at the first failure and reporting a single (token,
// message) diagnostic. The rules are split across typechecker.go (scope
// and statement dispatch), compat.go (expression and operator rules) and
// params.go (call-argument checking).
package typechecker

import (
	"fmt"

	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/diagnostics"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// Check type-checks mod and, recursively, every nested procedure scope in
// declaration order. It returns nil on success or the first diagnostic
// encountered. An internal contract-violation panic (malformed AST) is
// recovered and reported as a clean failure rather than propagated.
func Check(mod *ast.Module, tm *types.Manager) (diag *diagnostics.Diagnostic) {
	return checkScope(mod, tm)
}

func checkScope(scope ast.Scope, tm *types.Manager) (diag *diagnostics.Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			diag = diagnostics.Unsupported(scope.Token(), fmt.Sprintf("internal error: %v", r))
		}
	}()

	var stmts ast.Stmt
	var children []ast.Scope
	switch s := scope.(type) {
	case *ast.Module:
		stmts = s.Statements
		children = s.Children
	case *ast.Procedure:
		stmts = s.Statements
		children = s.Children
	default:
		return diagnostics.Unsupported(scope.Token(), "unknown scope kind")
	}

	for st := stmts; st != nil; st = st.Next() {
		if d := checkStmt(st, scope, tm); d != nil {
			return d
		}
	}
	for _, child := range children {
		if d := checkScope(child, tm); d != nil {
			return d
		}
	}
	return nil
}

// returnTypeOf reports the declared return type of the scope a Return
// statement lives in: a procedure's declared type, or the manager's null
// type for a module (which never expects a return expression).
func returnTypeOf(scope ast.Scope, tm *types.Manager) types.SemType {
	if proc, ok := scope.(*ast.Procedure); ok {
		return proc.Symbol.GetDataType()
	}
	return tm.GetNull()
}

func checkStmt(stmt ast.Stmt, scope ast.Scope, tm *types.Manager) *diagnostics.Diagnostic {
	switch s := stmt.(type) {
	case *ast.Assign:
		return checkAssign(s, tm)
	case *ast.Call:
		return checkExpr(s.Inner, tm)
	case *ast.Return:
		return checkReturn(s, tm)
	case *ast.If:
		return checkIf(s, scope, tm)
	case *ast.While:
		return checkWhile(s, scope, tm)
	case *ast.Break:
		return nil
	default:
		return diagnostics.Unsupported(stmt.Token(), "unknown statement kind")
	}
}

func checkAssign(s *ast.Assign, tm *types.Manager) *diagnostics.Diagnostic {
	switch s.Lhs.(type) {
	case *ast.Designator, *ast.ArrayDesignator:
	default:
		return diagnostics.ShapeMismatch(s.Lhs.Token(), "left handside of assignment must be a designator")
	}
	if d := checkExpr(s.Lhs, tm); d != nil {
		return d
	}
	if !s.Lhs.GetType().IsScalar() {
		return diagnostics.ShapeMismatch(s.Lhs.Token(), "left handside designator must be scalar type")
	}
	if d := checkExpr(s.Rhs, tm); d != nil {
		return d
	}
	if !s.Rhs.GetType().Match(s.Lhs.GetType()) {
		return diagnostics.TypeMismatch(s.Token(), fmt.Sprintf(
			"assignment type mismatch: cannot assign %s to %s", s.Rhs.GetType(), s.Lhs.GetType()))
	}
	return nil
}

func checkReturn(s *ast.Return, tm *types.Manager) *diagnostics.Diagnostic {
	expected := returnTypeOf(s.Scope, tm)
	if expected.Match(tm.GetNull()) {
		if s.Expr != nil {
			return diagnostics.SuperfluousExpressionAfterReturn(s.Token())
		}
		return nil
	}
	if s.Expr == nil {
		return diagnostics.ExpressionExpectedAfterReturn(s.Token())
	}
	if d := checkExpr(s.Expr, tm); d != nil {
		return d
	}
	if !s.Expr.GetType().Match(expected) {
		return diagnostics.TypeMismatch(s.Token(), fmt.Sprintf(
			"return type mismatch: expected %s, got %s", expected, s.Expr.GetType()))
	}
	return nil
}

func checkIf(s *ast.If, scope ast.Scope, tm *types.Manager) *diagnostics.Diagnostic {
	if d := checkExpr(s.Cond, tm); d != nil {
		return d
	}
	if !s.Cond.GetType().Match(tm.GetBool()) {
		return diagnostics.TypeMismatch(s.Cond.Token(), "if condition must be boolean")
	}
	for st := s.ThenBody; st != nil; st = st.Next() {
		if d := checkStmt(st, scope, tm); d != nil {
			return d
		}
	}
	for st := s.ElseBody; st != nil; st = st.Next() {
		if d := checkStmt(st, scope, tm); d != nil {
			return d
		}
	}
	return nil
}

func checkWhile(s *ast.While, scope ast.Scope, tm *types.Manager) *diagnostics.Diagnostic {
	if d := checkExpr(s.Cond, tm); d != nil {
		return d
	}
	if !s.Cond.GetType().Match(tm.GetBool()) {
		return diagnostics.TypeMismatch(s.Cond.Token(), "while condition must be boolean")
	}
	for st := s.Body; st != nil; st = st.Next() {
		if d := checkStmt(st, scope, tm); d != nil {
			return d
		}
	}
	return nil
}
