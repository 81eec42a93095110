package lower

import (
	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/tac"
)

// lowerExprValue is the value-mode lowering path: every expression kind
// produces an addressable result.
func (l *Lowerer) lowerExprValue(cb tac.Sink, expr ast.Expr) tac.Operand {
	switch e := expr.(type) {
	case *ast.Constant:
		return tac.Const{Value: e.Value}
	case *ast.Designator:
		return tac.Name{Symbol: e.Symbol}
	case *ast.StringConstant:
		return tac.Name{Symbol: e.Symbol}
	case *ast.BinaryOp:
		return l.lowerBinaryOpValue(cb, e)
	case *ast.UnaryOp:
		return l.lowerUnaryOpValue(cb, e)
	case *ast.SpecialOp:
		return l.lowerSpecialOpValue(cb, e)
	case *ast.FunctionCall:
		return l.lowerFunctionCall(cb, e)
	case *ast.ArrayDesignator:
		return l.lowerArrayDesignatorAddr(cb, e)
	default:
		panic("lower: unknown expression kind")
	}
}

var binOpcode = map[ast.BinOp]tac.Opcode{
	ast.Add: tac.OpAdd,
	ast.Sub: tac.OpSub,
	ast.Mul: tac.OpMul,
	ast.Div: tac.OpDiv,
}

var relOpcode = map[ast.BinOp]tac.Opcode{
	ast.Eq:  tac.OpEqual,
	ast.Neq: tac.OpNotEqual,
	ast.Lt:  tac.OpLessThan,
	ast.Le:  tac.OpLessEqual,
	ast.Gt:  tac.OpBiggerThan,
	ast.Ge:  tac.OpBiggerEqual,
}

// materializeBool runs a jumping-mode lowering and folds its two outcomes
// into a single 0/1 temporary (shared by boolean BinaryOp and
// UnaryOp(Not); other bool-valued expressions return their value directly
// in value mode).
func (l *Lowerer) materializeBool(cb tac.Sink, jump func(ltrue, lfalse *tac.Label)) tac.Operand {
	t := cb.CreateTemp(l.tm.GetBool())
	tL := cb.CreateLabel()
	fL := cb.CreateLabel()
	endL := cb.CreateLabel()

	jump(tL, fL)

	cb.AddInstr(tL)
	cb.AddInstr(&tac.Instruction{Op: tac.OpAssign, Dest: t, Src1: tac.Const{Value: 1}})
	cb.AddInstr(gotoInstr(endL))
	cb.AddInstr(fL)
	cb.AddInstr(&tac.Instruction{Op: tac.OpAssign, Dest: t, Src1: tac.Const{Value: 0}})
	cb.AddInstr(endL)
	return t
}

func (l *Lowerer) lowerBinaryOpValue(cb tac.Sink, b *ast.BinaryOp) tac.Operand {
	if b.GetType().Match(l.tm.GetBool()) {
		return l.materializeBool(cb, func(tL, fL *tac.Label) {
			l.lowerExprJump(cb, b, tL, fL)
		})
	}
	left := l.lowerExprValue(cb, b.Left)
	right := l.lowerExprValue(cb, b.Right)
	t := cb.CreateTemp(b.GetType())
	cb.AddInstr(&tac.Instruction{Op: binOpcode[b.Op], Dest: t, Src1: left, Src2: right})
	return t
}

func (l *Lowerer) lowerUnaryOpValue(cb tac.Sink, u *ast.UnaryOp) tac.Operand {
	switch u.Op {
	case ast.Pos:
		return l.lowerExprValue(cb, u.Operand)
	case ast.Neg:
		v := l.lowerExprValue(cb, u.Operand)
		t := cb.CreateTemp(u.GetType())
		cb.AddInstr(&tac.Instruction{Op: tac.OpNeg, Dest: t, Src1: v})
		return t
	case ast.Not:
		return l.materializeBool(cb, func(tL, fL *tac.Label) {
			l.lowerExprJump(cb, u, tL, fL)
		})
	default:
		panic("lower: unknown unary operator")
	}
}

func (l *Lowerer) lowerSpecialOpValue(cb tac.Sink, s *ast.SpecialOp) tac.Operand {
	v := l.lowerExprValue(cb, s.Operand)
	t := cb.CreateTemp(s.GetType())
	switch s.Op {
	case ast.Address:
		cb.AddInstr(&tac.Instruction{Op: tac.OpAddress, Dest: t, Src1: v})
	case ast.Deref:
		cb.AddInstr(&tac.Instruction{Op: tac.OpDeref, Dest: t, Src1: v})
	default:
		panic("lower: Cast reaches the lowerer only on a type-unclean tree")
	}
	return t
}

// lowerFunctionCall lowers a call: arguments are pushed in reverse index
// order, then the call is emitted. Returns nil (not a valid value-mode
// result) for a call whose return type is null; callers lowering a Call
// statement simply discard it.
func (l *Lowerer) lowerFunctionCall(cb tac.Sink, f *ast.FunctionCall) tac.Operand {
	n := len(f.Args)
	argVals := make([]tac.Operand, n)
	for i, arg := range f.Args {
		argVals[i] = l.lowerExprValue(cb, arg)
	}
	for i := n - 1; i >= 0; i-- {
		cb.AddInstr(&tac.Instruction{Op: tac.OpParam, Index: i, Src2: argVals[i]})
	}

	var dest tac.Operand
	if !f.Symbol.GetDataType().Match(l.tm.GetNull()) {
		dest = cb.CreateTemp(f.Symbol.GetDataType())
	}
	cb.AddInstr(&tac.Instruction{Op: tac.OpCall, Dest: dest, ProcName: f.Symbol.GetName()})
	return dest
}

// lowerExprJump is the jumping-mode lowering path, defined for expressions
// whose static type is bool. It never returns a value; ltrue and lfalse
// are branched to directly.
func (l *Lowerer) lowerExprJump(cb tac.Sink, expr ast.Expr, ltrue, lfalse *tac.Label) {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		l.lowerBinaryOpJump(cb, e, ltrue, lfalse)
	case *ast.UnaryOp:
		if e.Op == ast.Not {
			l.lowerExprJump(cb, e.Operand, lfalse, ltrue)
			return
		}
		l.lowerValueAsJump(cb, e, ltrue, lfalse)
	default:
		l.lowerValueAsJump(cb, e, ltrue, lfalse)
	}
}

func (l *Lowerer) lowerBinaryOpJump(cb tac.Sink, b *ast.BinaryOp, ltrue, lfalse *tac.Label) {
	switch b.Op {
	case ast.And:
		mid := cb.CreateLabel()
		l.lowerExprJump(cb, b.Left, mid, lfalse)
		cb.AddInstr(mid)
		l.lowerExprJump(cb, b.Right, ltrue, lfalse)
	case ast.Or:
		mid := cb.CreateLabel()
		l.lowerExprJump(cb, b.Left, ltrue, mid)
		cb.AddInstr(mid)
		l.lowerExprJump(cb, b.Right, ltrue, lfalse)
	case ast.Eq, ast.Neq, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		left := l.lowerExprValue(cb, b.Left)
		right := l.lowerExprValue(cb, b.Right)
		cb.AddInstr(&tac.Instruction{Op: relOpcode[b.Op], Dest: ltrue, Src1: left, Src2: right})
		cb.AddInstr(gotoInstr(lfalse))
	default:
		panic("lower: non-boolean BinaryOp lowered in jumping mode")
	}
}

// lowerValueAsJump handles Designator/Constant/ArrayDesignator/FunctionCall
// (any bool value source): evaluate in value mode, then branch on equality
// with 1.
func (l *Lowerer) lowerValueAsJump(cb tac.Sink, expr ast.Expr, ltrue, lfalse *tac.Label) {
	v := l.lowerExprValue(cb, expr)
	cb.AddInstr(&tac.Instruction{Op: tac.OpEqual, Dest: ltrue, Src1: v, Src2: tac.Const{Value: 1}})
	cb.AddInstr(gotoInstr(lfalse))
}
