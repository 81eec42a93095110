package ast

import "github.com/Leeingnyo/snupl-scanning/internal/tokens"

// Assign is `lhs := rhs`. Lhs is a Designator or an ArrayDesignator (the
// original compiler models the latter as a subclass of the former; the
// closed algebra here keeps them as sibling node kinds and widens this
// field to Expr; NewAssign panics on any lhs that isn't one of the two).
type Assign struct {
	stmtBase
	Lhs Expr
	Rhs Expr
}

func (a *Assign) astStmt() {}

func NewAssign(tok tokens.Token, lhs, rhs Expr) *Assign {
	if lhs == nil || rhs == nil {
		panic("ast: Assign requires non-null lhs and rhs")
	}
	switch lhs.(type) {
	case *Designator, *ArrayDesignator:
	default:
		panic("ast: Assign lhs must be a Designator or ArrayDesignator")
	}
	return &Assign{stmtBase: newStmtBase(tok), Lhs: lhs, Rhs: rhs}
}

// Call is a statement wrapping a call whose result is discarded.
type Call struct {
	stmtBase
	Inner *FunctionCall
}

func (c *Call) astStmt() {}

func NewCall(tok tokens.Token, inner *FunctionCall) *Call {
	if inner == nil {
		panic("ast: Call requires a non-null FunctionCall")
	}
	return &Call{stmtBase: newStmtBase(tok), Inner: inner}
}

// Return may appear in any scope's statement list; Expr is non-nil iff
// the enclosing scope's return type is non-null (checked by the type
// checker, not at construction).
type Return struct {
	stmtBase
	Scope Scope
	Expr  Expr
}

func (r *Return) astStmt() {}

func NewReturn(tok tokens.Token, scope Scope, expr Expr) *Return {
	if scope == nil {
		panic("ast: Return requires a non-null enclosing scope")
	}
	return &Return{stmtBase: newStmtBase(tok), Scope: scope, Expr: expr}
}

// If is `if cond then thenList else elseList end`. Either body may be
// empty.
type If struct {
	stmtBase
	Cond     Expr
	ThenBody Stmt
	ElseBody Stmt
}

func (i *If) astStmt() {}

func NewIf(tok tokens.Token, cond Expr) *If {
	if cond == nil {
		panic("ast: If requires a non-null condition")
	}
	return &If{stmtBase: newStmtBase(tok), Cond: cond}
}

func (i *If) SetThenBody(first Stmt) { i.ThenBody = first }
func (i *If) SetElseBody(first Stmt) { i.ElseBody = first }

// While is `while cond do body end`.
type While struct {
	stmtBase
	Cond Expr
	Body Stmt
}

func (w *While) astStmt() {}

func NewWhile(tok tokens.Token, cond Expr) *While {
	if cond == nil {
		panic("ast: While requires a non-null condition")
	}
	return &While{stmtBase: newStmtBase(tok), Cond: cond}
}

func (w *While) SetBody(first Stmt) { w.Body = first }

// Break is only meaningful inside a While; the parser is responsible for
// syntactic containment, the core does not re-verify it.
type Break struct {
	stmtBase
}

func (b *Break) astStmt() {}

func NewBreak(tok tokens.Token) *Break {
	return &Break{stmtBase: newStmtBase(tok)}
}
