package lower

import (
	"testing"

	"github.com/nalgeon/be"

	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/source"
	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
	"github.com/Leeingnyo/snupl-scanning/internal/table"
	"github.com/Leeingnyo/snupl-scanning/internal/tac"
	"github.com/Leeingnyo/snupl-scanning/internal/tokens"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

func tok(value string) tokens.Token {
	p := source.Position{Line: 1, Column: 1}
	return tokens.NewToken(tokens.IDENT_TOKEN, value, p, p)
}

func labelsOf(instrs []tac.Instr) map[*tac.Label]int {
	counts := make(map[*tac.Label]int)
	for _, in := range instrs {
		if l, ok := in.(*tac.Label); ok {
			counts[l]++
		}
	}
	return counts
}

// TestEveryTargetIsEmittedExactlyOnce checks that every Goto and
// conditional branch targets a label emitted exactly once in the block.
func TestEveryTargetIsEmittedExactlyOnce(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	i := symbols.NewSymbol("i", symbols.Global, tm.GetInt())
	n := symbols.NewSymbol("n", symbols.Global, tm.GetInt())
	be.Err(t, st.Declare("i", i), nil)
	be.Err(t, st.Declare("n", n), nil)

	cond := ast.NewBinaryOp(tok("<"), ast.Lt,
		ast.NewDesignator(tok("i"), i), ast.NewDesignator(tok("n"), n), tm)
	whileStmt := ast.NewWhile(tok("while"), cond)
	inc := ast.NewAssign(tok(":="),
		ast.NewDesignator(tok("i"), i),
		ast.NewBinaryOp(tok("+"), ast.Add, ast.NewDesignator(tok("i"), i), ast.NewConstant(tok("1"), ast.ConstInt, 1, tm), tm))
	whileStmt.SetBody(inc)
	mod.SetStatementSequence(whileStmt)

	l := New(tm)
	res := l.Run(mod)

	labelCounts := labelsOf(res.Module.Instructions())
	for target := range collectJumpTargets(res.Module.Instructions()) {
		be.Equal(t, labelCounts[target], 1)
	}
}

func collectJumpTargets(instrs []tac.Instr) map[*tac.Label]bool {
	targets := make(map[*tac.Label]bool)
	for _, in := range instrs {
		op, ok := in.(*tac.Instruction)
		if !ok {
			continue
		}
		if op.Op == tac.OpGoto || op.Op.IsConditionalJump() {
			if l, ok := op.Dest.(*tac.Label); ok {
				targets[l] = true
			}
		}
	}
	return targets
}

func newModule(tm *types.Manager) (*ast.Module, *table.SymbolTable) {
	st := table.NewModuleTable(tm)
	return ast.NewModule(tok("M"), st), st
}

// TestShortCircuitAndSkipsRightOnFalseLeft checks, at the
// shape level, that the right operand's evaluation is gated behind the mid
// label and not reachable from the left operand's false edge.
func TestShortCircuitAndSkipsRightOnFalseLeft(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	a := symbols.NewSymbol("a", symbols.Global, tm.GetBool())
	b := symbols.NewSymbol("b", symbols.Global, tm.GetBool())
	be.Err(t, st.Declare("a", a), nil)
	be.Err(t, st.Declare("b", b), nil)

	and := ast.NewBinaryOp(tok("&&"), ast.And, ast.NewDesignator(tok("a"), a), ast.NewDesignator(tok("b"), b), tm)
	x := symbols.NewSymbol("x", symbols.Global, tm.GetBool())
	be.Err(t, st.Declare("x", x), nil)
	assign := ast.NewAssign(tok(":="), ast.NewDesignator(tok("x"), x), and)
	mod.SetStatementSequence(assign)

	l := New(tm)
	res := l.Run(mod)

	instrs := res.Module.Instructions()
	var mid, leftFalse, rightFalse *tac.Label
	sawEqualB := false
	rightGatedByMid := false
	for idx, in := range instrs {
		op, ok := in.(*tac.Instruction)
		if !ok || op.Op != tac.OpEqual {
			continue
		}
		name, ok := op.Src1.(tac.Name)
		if !ok {
			continue
		}
		var falseEdge *tac.Label
		if idx+1 < len(instrs) {
			if g, ok := instrs[idx+1].(*tac.Instruction); ok && g.Op == tac.OpGoto {
				falseEdge, _ = g.Dest.(*tac.Label)
			}
		}
		switch name.Symbol {
		case a:
			mid, _ = op.Dest.(*tac.Label)
			leftFalse = falseEdge
		case b:
			sawEqualB = true
			rightFalse = falseEdge
			if idx > 0 && mid != nil && instrs[idx-1] == tac.Instr(mid) {
				rightGatedByMid = true
			}
		}
	}
	be.True(t, sawEqualB) // b is read via the value-as-jump path once jumping mode reaches it
	be.True(t, rightGatedByMid)
	be.True(t, leftFalse != nil && leftFalse == rightFalse)
	be.True(t, leftFalse != mid)
}

// TestArrayAddressArithmeticMultiDimensional checks that a multi-dimensional
// array element assignment lowers through DIM/DOFS into a store against a
// computed reference operand.
func TestArrayAddressArithmeticMultiDimensional(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	arrType := tm.GetArray(3, tm.GetArray(4, tm.GetInt()))
	a := symbols.NewSymbol("a", symbols.Global, arrType)
	i := symbols.NewSymbol("i", symbols.Global, tm.GetInt())
	j := symbols.NewSymbol("j", symbols.Global, tm.GetInt())
	be.Err(t, st.Declare("a", a), nil)
	be.Err(t, st.Declare("i", i), nil)
	be.Err(t, st.Declare("j", j), nil)

	ad := ast.NewArrayDesignator(tok("a"), a, tm)
	ad.AddIndex(ast.NewDesignator(tok("i"), i))
	ad.AddIndex(ast.NewDesignator(tok("j"), j))
	ad.IndicesComplete()

	assign := ast.NewAssign(tok(":="), ad, ast.NewConstant(tok("0"), ast.ConstInt, 0, tm))
	mod.SetStatementSequence(assign)

	l := New(tm)
	res := l.Run(mod)

	sawDim := false
	sawDofs := false
	sawFinalStoreToReference := false
	for _, in := range res.Module.Instructions() {
		op, ok := in.(*tac.Instruction)
		if !ok {
			continue
		}
		if op.Op == tac.OpCall && op.ProcName == "DIM" {
			sawDim = true
		}
		if op.Op == tac.OpCall && op.ProcName == "DOFS" {
			sawDofs = true
		}
		if op.Op == tac.OpAssign {
			if ref, ok := op.Dest.(tac.Reference); ok && ref.Symbol == a {
				sawFinalStoreToReference = true
			}
		}
	}
	be.True(t, sawDim)
	be.True(t, sawDofs)
	be.True(t, sawFinalStoreToReference)
}

func TestBreakLowersToGotoEnd(t *testing.T) {
	tm := types.NewManager()
	mod, st := newModule(tm)

	flag := symbols.NewSymbol("flag", symbols.Global, tm.GetBool())
	be.Err(t, st.Declare("flag", flag), nil)

	whileStmt := ast.NewWhile(tok("while"), ast.NewDesignator(tok("flag"), flag))
	brk := ast.NewBreak(tok("break"))
	whileStmt.SetBody(brk)
	mod.SetStatementSequence(whileStmt)

	l := New(tm)
	res := l.Run(mod)
	be.True(t, len(res.Module.Instructions()) > 0)

	// The loop's exit test is `flag == 1 goto body; goto loopEnd`; the first
	// instruction of the body must be the break's goto to that same loopEnd.
	instrs := res.Module.Instructions()
	var bodyL, loopEnd *tac.Label
	for idx, in := range instrs {
		if op, ok := in.(*tac.Instruction); ok && op.Op == tac.OpEqual && idx+1 < len(instrs) {
			bodyL, _ = op.Dest.(*tac.Label)
			if g, ok := instrs[idx+1].(*tac.Instruction); ok && g.Op == tac.OpGoto {
				loopEnd, _ = g.Dest.(*tac.Label)
			}
			break
		}
	}
	breaksToEnd := false
	for idx, in := range instrs {
		if bodyL != nil && in == tac.Instr(bodyL) && idx+1 < len(instrs) {
			if g, ok := instrs[idx+1].(*tac.Instruction); ok && g.Op == tac.OpGoto && g.Dest == tac.Operand(loopEnd) {
				breaksToEnd = true
			}
		}
	}
	be.True(t, loopEnd != nil)
	be.True(t, breaksToEnd)
}
