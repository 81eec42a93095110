// Package lower implements the TAC lowerer: it walks a type-clean AST and
// emits three-address code into a tac.Sink. It never produces diagnostics
// — that contract belongs entirely to the type checker, run first.
//
// Control flow and loop state are threaded through lowering via explicit
// next/end label parameters rather than a context stack, since callers
// need one exact, predictable calling convention for the labels each
// statement kind emits.
package lower

import (
	"github.com/Leeingnyo/snupl-scanning/internal/ast"
	"github.com/Leeingnyo/snupl-scanning/internal/tac"
	"github.com/Leeingnyo/snupl-scanning/internal/table"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// Lowerer carries the type manager every temp/address computation needs to
// size and type its temporaries.
type Lowerer struct {
	tm *types.Manager
}

// New creates a Lowerer backed by tm.
func New(tm *types.Manager) *Lowerer {
	return &Lowerer{tm: tm}
}

// Result collects the code block lowered for a module and for every
// procedure nested (at any depth) within it, keyed by procedure name.
type Result struct {
	Module     *tac.CodeBlock
	Procedures map[string]*tac.CodeBlock
}

// Run lowers mod and every nested procedure scope into its own code block.
func (l *Lowerer) Run(mod *ast.Module) *Result {
	res := &Result{Procedures: make(map[string]*tac.CodeBlock)}
	res.Module = l.lowerScope(mod, mod.Symbols, mod.Statements, mod.Children)
	l.lowerChildren(mod.Children, res)
	return res
}

func (l *Lowerer) lowerChildren(children []ast.Scope, res *Result) {
	for _, child := range children {
		proc, ok := child.(*ast.Procedure)
		if !ok {
			continue
		}
		cb := l.lowerScope(proc, proc.Symbols, proc.Statements, proc.Children)
		res.Procedures[proc.Symbol.GetName()] = cb
		l.lowerChildren(proc.Children, res)
	}
}

// lowerScope lowers one scope's own statement list into a fresh code
// block: each top-level statement gets a fresh trailing label, then the
// block is cleaned up once.
func (l *Lowerer) lowerScope(_ ast.Scope, st *table.SymbolTable, stmts ast.Stmt, _ []ast.Scope) *tac.CodeBlock {
	cb := tac.New(st)
	l.lowerBody(cb, stmts, nil)
	cb.CleanupControlFlow()
	return cb
}

// lowerBody lowers a statement sub-sequence (a scope's top level, or an
// if/while body), giving each statement a fresh per-statement label to
// fall through to. end is the label Break targets; nil outside a loop.
func (l *Lowerer) lowerBody(cb tac.Sink, first ast.Stmt, end *tac.Label) {
	for s := first; s != nil; s = s.Next() {
		after := cb.CreateLabel()
		l.lowerStmt(cb, s, after, end)
		cb.AddInstr(after)
	}
}

func gotoInstr(target *tac.Label) *tac.Instruction {
	return &tac.Instruction{Op: tac.OpGoto, Dest: target}
}

func (l *Lowerer) lowerStmt(cb tac.Sink, stmt ast.Stmt, next, end *tac.Label) {
	switch s := stmt.(type) {
	case *ast.Assign:
		src := l.lowerExprValue(cb, s.Rhs)
		dest := l.lowerDesignatorAddr(cb, s.Lhs)
		cb.AddInstr(&tac.Instruction{Op: tac.OpAssign, Dest: dest, Src1: src})
		cb.AddInstr(gotoInstr(next))
	case *ast.Call:
		l.lowerFunctionCall(cb, s.Inner)
		cb.AddInstr(gotoInstr(next))
	case *ast.Return:
		var src tac.Operand
		if s.Expr != nil {
			src = l.lowerExprValue(cb, s.Expr)
		}
		cb.AddInstr(&tac.Instruction{Op: tac.OpReturn, Src1: src})
		cb.AddInstr(gotoInstr(next)) // dead; cleanup elides it
	case *ast.If:
		l.lowerIf(cb, s, next, end)
	case *ast.While:
		l.lowerWhile(cb, s, next, end)
	case *ast.Break:
		if end == nil {
			panic("lower: Break lowered outside a loop")
		}
		cb.AddInstr(gotoInstr(end))
	default:
		panic("lower: unknown statement kind")
	}
}

func (l *Lowerer) lowerIf(cb tac.Sink, s *ast.If, next, end *tac.Label) {
	thenL := cb.CreateLabel()
	elseL := cb.CreateLabel()
	endL := cb.CreateLabel()

	l.lowerExprJump(cb, s.Cond, thenL, elseL)
	cb.AddInstr(thenL)
	l.lowerBody(cb, s.ThenBody, end)
	cb.AddInstr(gotoInstr(endL))
	cb.AddInstr(elseL)
	l.lowerBody(cb, s.ElseBody, end)
	cb.AddInstr(endL)
	cb.AddInstr(gotoInstr(next))
}

func (l *Lowerer) lowerWhile(cb tac.Sink, s *ast.While, next, _ *tac.Label) {
	head := cb.CreateLabel()
	bodyL := cb.CreateLabel()
	loopEnd := cb.CreateLabel()

	cb.AddInstr(head)
	l.lowerExprJump(cb, s.Cond, bodyL, loopEnd)
	cb.AddInstr(bodyL)
	l.lowerBody(cb, s.Body, loopEnd)
	cb.AddInstr(gotoInstr(head))
	cb.AddInstr(loopEnd)
	cb.AddInstr(gotoInstr(next))
}

// lowerDesignatorAddr evaluates an Assign lhs to an addressable place: a
// plain name for Designator, a computed reference for ArrayDesignator.
func (l *Lowerer) lowerDesignatorAddr(cb tac.Sink, lhs ast.Expr) tac.Operand {
	switch d := lhs.(type) {
	case *ast.Designator:
		return tac.Name{Symbol: d.Symbol}
	case *ast.ArrayDesignator:
		return l.lowerArrayDesignatorAddr(cb, d)
	default:
		panic("lower: Assign lhs is neither Designator nor ArrayDesignator")
	}
}
