package lower

import (
	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/tac"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// lowerArrayDesignatorAddr computes an array element's address, the
// arithmetically interesting case in this lowerer. The offset is
// Horner-accumulated using the runtime helper DIM(ptr, k) for every
// dimension but the innermost, whose multiplier is the static element
// size; DOFS(ptr) adds the array header's payload offset; the pointer
// itself is added last.
//
// This emits the DIM/DOFS calls and the surrounding arithmetic as TAC
// directly rather than building and lowering a synthetic expression tree
// through the regular value-mode path, which would need a "pre-lowered
// value" expression kind outside the closed AST algebra since the calls
// must share one already-computed pointer operand rather than
// re-evaluating the designator per call.
func (l *Lowerer) lowerArrayDesignatorAddr(cb tac.Sink, a *ast.ArrayDesignator) tac.Operand {
	declType := a.Symbol.GetDataType()
	isPtr := declType.IsPointer()

	var ptrVal tac.Operand
	var arrType types.SemType
	if isPtr {
		ptrVal = tac.Name{Symbol: a.Symbol}
		arrType = declType.(*types.PointerType).GetBaseType()
	} else {
		t := cb.CreateTemp(l.tm.GetPointer(declType))
		cb.AddInstr(&tac.Instruction{Op: tac.OpAddress, Dest: t, Src1: tac.Name{Symbol: a.Symbol}})
		ptrVal = t
		arrType = declType
	}

	rank := 0
	elemType := arrType
	for {
		at, ok := elemType.(*types.ArrayType)
		if !ok {
			break
		}
		rank++
		elemType = at.GetInnerType()
	}
	elemSize := elemType.Size()

	// Pad with zero indices if fewer were supplied than the static rank.
	// The type checker rejects this shape before lowering ever runs; this
	// is a tolerance, not an assumed invariant.
	idxVals := make([]tac.Operand, rank)
	for i := 0; i < rank; i++ {
		if i < len(a.Indices) {
			idxVals[i] = l.lowerExprValue(cb, a.Indices[i])
		} else {
			idxVals[i] = tac.Const{Value: 0}
		}
	}

	owner := cb.GetOwner()
	dimSym := owner.FindSymbol("DIM")
	dofsSym := owner.FindSymbol("DOFS")

	offset := idxVals[0]
	for k := 1; k < rank; k++ {
		dimResult := l.emitCall(cb, dimSym.GetName(), l.tm.GetInt(),
			ptrVal, tac.Const{Value: int64(k + 1)})

		mul := cb.CreateTemp(l.tm.GetInt())
		cb.AddInstr(&tac.Instruction{Op: tac.OpMul, Dest: mul, Src1: offset, Src2: dimResult})

		add := cb.CreateTemp(l.tm.GetInt())
		cb.AddInstr(&tac.Instruction{Op: tac.OpAdd, Dest: add, Src1: mul, Src2: idxVals[k]})
		offset = add
	}

	scaled := cb.CreateTemp(l.tm.GetInt())
	cb.AddInstr(&tac.Instruction{Op: tac.OpMul, Dest: scaled, Src1: offset, Src2: tac.Const{Value: int64(elemSize)}})

	dofsResult := l.emitCall(cb, dofsSym.GetName(), l.tm.GetInt(), ptrVal)

	withDofs := cb.CreateTemp(l.tm.GetInt())
	cb.AddInstr(&tac.Instruction{Op: tac.OpAdd, Dest: withDofs, Src1: scaled, Src2: dofsResult})

	addr := cb.CreateTemp(l.tm.GetPointer(elemType))
	cb.AddInstr(&tac.Instruction{Op: tac.OpAdd, Dest: addr, Src1: ptrVal, Src2: withDofs})

	return tac.Reference{Base: addr, Symbol: a.Symbol}
}

// emitCall pushes args in reverse index order (the same convention as a
// user-level FunctionCall) and emits a call into a fresh temp of retType.
func (l *Lowerer) emitCall(cb tac.Sink, procName string, retType types.SemType, args ...tac.Operand) tac.Operand {
	for i := len(args) - 1; i >= 0; i-- {
		cb.AddInstr(&tac.Instruction{Op: tac.OpParam, Index: i, Src2: args[i]})
	}
	dest := cb.CreateTemp(retType)
	cb.AddInstr(&tac.Instruction{Op: tac.OpCall, Dest: dest, ProcName: procName})
	return dest
}
