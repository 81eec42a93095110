package typechecker

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/source"
	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
	"github.com/Leeingnyo/snupl-scanning/internal/table"
	"github.com/Leeingnyo/snupl-scanning/internal/tokens"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

func tok(value string) tokens.Token {
	p := source.Position{Line: 1, Column: 1}
	return tokens.NewToken(tokens.IDENT_TOKEN, value, p, p)
}

func newModule(tm *types.Manager) (*ast.Module, *table.SymbolTable) {
	st := table.NewModuleTable(tm)
	return ast.NewModule(tok("M"), st), st
}

func TestAssignOK(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	x := symbols.NewSymbol("x", symbols.Global, tm.GetInt())
	be.Err(t, st.Declare("x", x), nil)

	lhs := ast.NewDesignator(tok("x"), x)
	rhs := ast.NewConstant(tok("1"), ast.ConstInt, 1, tm)
	assign := ast.NewAssign(tok(":="), lhs, rhs)
	mod.SetStatementSequence(assign)

	be.True(t, Check(mod, tm) == nil)
}

func TestAssignScalarToArrayRejected(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	arrType := tm.GetArray(3, tm.GetInt())
	a := symbols.NewSymbol("a", symbols.Global, arrType)
	be.Err(t, st.Declare("a", a), nil)

	lhs := ast.NewDesignator(tok("a"), a)
	rhs := ast.NewConstant(tok("1"), ast.ConstInt, 1, tm)
	assign := ast.NewAssign(tok(":="), lhs, rhs)
	mod.SetStatementSequence(assign)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
}

func TestAssignTypeMismatchRejected(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	x := symbols.NewSymbol("x", symbols.Global, tm.GetInt())
	be.Err(t, st.Declare("x", x), nil)

	lhs := ast.NewDesignator(tok("x"), x)
	rhs := ast.NewConstant(tok("true"), ast.ConstBool, 1, tm)
	assign := ast.NewAssign(tok(":="), lhs, rhs)
	mod.SetStatementSequence(assign)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
}

func TestReturnWithoutExpressionInFunctionFails(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	procSym := symbols.NewProc("f", nil, tm.GetInt())
	be.Err(t, st.Declare("f", procSym), nil)
	proc := ast.NewProcedure(tok("f"), mod, procSym, table.New(st))

	ret := ast.NewReturn(tok("return"), proc, nil)
	proc.SetStatementSequence(ret)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
	be.Equal(t, diag.Message, "expression expected after return.")
}

func TestReturnWithExpressionInProcedureFails(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	procSym := symbols.NewProc("p", nil, tm.GetNull())
	be.Err(t, st.Declare("p", procSym), nil)
	proc := ast.NewProcedure(tok("p"), mod, procSym, table.New(st))

	x := symbols.NewSymbol("x", symbols.Local, tm.GetInt())
	expr := ast.NewDesignator(tok("x"), x)
	ret := ast.NewReturn(tok("return"), proc, expr)
	proc.SetStatementSequence(ret)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
	be.Equal(t, diag.Message, "superfluous expression after return.")
}

func TestConstantOutOfRangeForCharFails(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	x := symbols.NewSymbol("x", symbols.Global, tm.GetChar())
	be.Err(t, st.Declare("x", x), nil)

	lhs := ast.NewDesignator(tok("x"), x)
	rhs := ast.NewConstant(tok("256"), ast.ConstChar, 256, tm)
	assign := ast.NewAssign(tok(":="), lhs, rhs)
	mod.SetStatementSequence(assign)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
	be.Equal(t, diag.Message, "invalid value for character type constant")
}

func TestCallWrongArityFails(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	param := symbols.NewSymbol("n", symbols.Param, tm.GetInt())
	procSym := symbols.NewProc("f", []*symbols.Symbol{param}, tm.GetNull())
	be.Err(t, st.Declare("f", procSym), nil)

	call := ast.NewFunctionCall(tok("f"), procSym)
	stmt := ast.NewCall(tok("f"), call)
	mod.SetStatementSequence(stmt)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
	be.Equal(t, diag.Message, "number of arguments does not match the number of parameters")
}

func TestIfConditionMustBeBool(t *testing.T) {
	tm := types.NewManager()
	mod, _ := newModule(tm)

	cond := ast.NewConstant(tok("1"), ast.ConstInt, 1, tm)
	ifStmt := ast.NewIf(tok("if"), cond)
	mod.SetStatementSequence(ifStmt)

	diag := Check(mod, tm)
	be.True(t, diag != nil)
}

func TestArrayDesignatorIndexCountMustMatchRank(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)
	_ = mod

	arrType := tm.GetArray(3, tm.GetArray(4, tm.GetInt()))
	a := symbols.NewSymbol("a", symbols.Global, arrType)
	be.Err(t, st.Declare("a", a), nil)

	ad := ast.NewArrayDesignator(tok("a"), a, tm)
	ad.AddIndex(ast.NewConstant(tok("0"), ast.ConstInt, 0, tm))
	ad.IndicesComplete()

	diag := checkArrayDesignator(ad, tm)
	be.True(t, diag != nil)
	be.Equal(t, diag.Message, "Not enough indices")
}

func TestBinaryOpOperatorClasses(t *testing.T) {
	tm := types.NewManager()

	i := ast.NewConstant(tok("1"), ast.ConstInt, 1, tm)
	j := ast.NewConstant(tok("2"), ast.ConstInt, 2, tm)
	bo := ast.NewBinaryOp(tok("+"), ast.Add, i, j, tm)
	be.True(t, checkBinaryOp(bo, tm) == nil)

	bools := ast.NewBinaryOp(tok("&&"), ast.And, i, j, tm)
	diag := checkBinaryOp(bools, tm)
	be.True(t, diag != nil)
}
