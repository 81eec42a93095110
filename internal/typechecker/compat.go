package typechecker

import (
	"fmt"

	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/diagnostics"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// checkExpr dispatches to the per-kind rule. Unlike checkStmt, an
// expression's own type is recovered afterwards via GetType(): this
// function only ever reports whether the expression (and its children)
// type-check.
func checkExpr(expr ast.Expr, tm *types.Manager) *diagnostics.Diagnostic {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		return checkBinaryOp(e, tm)
	case *ast.UnaryOp:
		return checkUnaryOp(e, tm)
	case *ast.SpecialOp:
		return checkSpecialOp(e, tm)
	case *ast.FunctionCall:
		return checkFunctionCall(e, tm)
	case *ast.Designator:
		return checkDesignator(e)
	case *ast.ArrayDesignator:
		return checkArrayDesignator(e, tm)
	case *ast.Constant:
		return checkConstant(e)
	case *ast.StringConstant:
		return nil
	default:
		return diagnostics.Unsupported(expr.Token(), "unknown expression kind")
	}
}

// isOneOf reports whether t structurally matches any of wants.
func isOneOf(t types.SemType, wants ...types.SemType) bool {
	for _, w := range wants {
		if t.Match(w) {
			return true
		}
	}
	return false
}

func checkBinaryOp(b *ast.BinaryOp, tm *types.Manager) *diagnostics.Diagnostic {
	if d := checkExpr(b.Left, tm); d != nil {
		return d
	}
	if d := checkExpr(b.Right, tm); d != nil {
		return d
	}

	lt, rt := b.Left.GetType(), b.Right.GetType()
	switch b.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		if !lt.Match(tm.GetInt()) || !rt.Match(tm.GetInt()) {
			return diagnostics.TypeMismatch(b.Token(), fmt.Sprintf(
				"operator %s requires integer operands", b.Op))
		}
	case ast.And, ast.Or:
		if !lt.Match(tm.GetBool()) || !rt.Match(tm.GetBool()) {
			return diagnostics.TypeMismatch(b.Token(), fmt.Sprintf(
				"operator %s requires boolean operands", b.Op))
		}
	case ast.Eq, ast.Neq:
		if !isOneOf(lt, tm.GetBool(), tm.GetChar(), tm.GetInt()) {
			return diagnostics.TypeMismatch(b.Token(), fmt.Sprintf(
				"operator %s requires a scalar left operand", b.Op))
		}
		if !rt.Match(lt) {
			return diagnostics.TypeMismatch(b.Token(), fmt.Sprintf(
				"operator %s requires matching operand types", b.Op))
		}
	case ast.Lt, ast.Le, ast.Gt, ast.Ge:
		if !isOneOf(lt, tm.GetChar(), tm.GetInt()) {
			return diagnostics.TypeMismatch(b.Token(), fmt.Sprintf(
				"operator %s requires an ordered left operand", b.Op))
		}
		if !rt.Match(lt) {
			return diagnostics.TypeMismatch(b.Token(), fmt.Sprintf(
				"operator %s requires matching operand types", b.Op))
		}
	default:
		return diagnostics.Unsupported(b.Token(), "unknown binary operator")
	}
	return nil
}

func checkUnaryOp(u *ast.UnaryOp, tm *types.Manager) *diagnostics.Diagnostic {
	if d := checkExpr(u.Operand, tm); d != nil {
		return d
	}
	t := u.Operand.GetType()
	switch u.Op {
	case ast.Neg, ast.Pos:
		if !t.Match(tm.GetInt()) {
			return diagnostics.TypeMismatch(u.Token(), "unary +/- requires an integer operand")
		}
	case ast.Not:
		if !t.Match(tm.GetBool()) {
			return diagnostics.TypeMismatch(u.Token(), "! requires a boolean operand")
		}
	}
	return nil
}

func checkSpecialOp(s *ast.SpecialOp, tm *types.Manager) *diagnostics.Diagnostic {
	if d := checkExpr(s.Operand, tm); d != nil {
		return d
	}
	switch s.Op {
	case ast.Address:
		if !s.Operand.GetType().IsArray() {
			return diagnostics.OperandShape(s.Token(), "@ requires an array operand")
		}
	case ast.Deref:
		if !s.Operand.GetType().IsPointer() {
			return diagnostics.OperandShape(s.Token(), "^ requires a pointer operand")
		}
	case ast.Cast:
		return diagnostics.Unsupported(s.Token(), "cast is not supported")
	}
	return nil
}

func checkDesignator(d *ast.Designator) *diagnostics.Diagnostic {
	if d.GetType() == nil {
		return diagnostics.InvalidSymbol(d.Token(), fmt.Sprintf("symbol %q has no type", d.Symbol.GetName()))
	}
	return nil
}

func checkConstant(c *ast.Constant) *diagnostics.Diagnostic {
	switch c.Kind {
	case ast.ConstInt:
		if c.Value < -(1<<31) || c.Value > (1<<31)-1 {
			return diagnostics.ValueDomain(c.Token(), "invalid value for integer type constant")
		}
	case ast.ConstChar:
		if c.Value < 0 || c.Value > 255 {
			return diagnostics.ValueDomain(c.Token(), "invalid value for character type constant")
		}
	case ast.ConstBool:
		if c.Value != 0 && c.Value != 1 {
			return diagnostics.ValueDomain(c.Token(), "invalid value for boolean type constant")
		}
	default:
		return diagnostics.Unsupported(c.Token(), "unknown constant kind")
	}
	return nil
}

func checkArrayDesignator(a *ast.ArrayDesignator, tm *types.Manager) *diagnostics.Diagnostic {
	baseType := a.Symbol.GetDataType()
	if ptr, ok := baseType.(*types.PointerType); ok {
		baseType = ptr.GetBaseType()
	}
	arr, ok := baseType.(*types.ArrayType)
	if !ok {
		return diagnostics.ShapeMismatch(a.Token(), fmt.Sprintf("symbol %q is not an array", a.Symbol.GetName()))
	}

	rank := 0
	for t := types.SemType(arr); ; {
		at, ok := t.(*types.ArrayType)
		if !ok {
			break
		}
		rank++
		t = at.GetInnerType()
	}

	for _, idx := range a.Indices {
		if d := checkExpr(idx, tm); d != nil {
			return d
		}
		if !idx.GetType().Match(tm.GetInt()) {
			return diagnostics.TypeMismatch(idx.Token(), "array index must be integer")
		}
	}

	if len(a.Indices) > rank {
		return diagnostics.TooManyIndices(a.Token())
	}
	if len(a.Indices) < rank {
		return diagnostics.NotEnoughIndices(a.Token())
	}
	return nil
}
