// Package ast implements the closed node algebra the type checker and TAC
// lowerer walk: scopes, statements, and expressions produced by a parser
// that is out of scope here. Nodes are immutable after construction except
// for the few list-extension mutators (SetNext, AddArg, AddIndex,
// IndicesComplete, SetStatementSequence, SetThenBody, SetElseBody, SetBody,
// AddChild).
//
// The marker-method style (astNode/astExpr/astStmt/astScope) expresses a
// closed sum type as a set of small interfaces rather than a single
// discriminated struct.
package ast

import (
	"sync/atomic"

	"github.com/Leeingnyo/snupl-scanning/internal/source"
	"github.com/Leeingnyo/snupl-scanning/internal/tac"
	"github.com/Leeingnyo/snupl-scanning/internal/tokens"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// Node is the base of every AST variant: every node carries a unique id
// (for diagnostics and graph dumps) and the token it was built from.
type Node interface {
	ID() int
	Token() tokens.Token
	Loc() *source.Location
	astNode()
}

// Expr is an expression node: it computes a type and, once lowered, may
// cache the TAC address that held its value.
type Expr interface {
	Node
	astExpr()
	GetType() types.SemType
	CachedAddr() tac.Operand
	SetCachedAddr(tac.Operand)
}

// Stmt is a statement node. Statements form a singly linked, intrusive
// next-pointer list within a body.
type Stmt interface {
	Node
	astStmt()
	Next() Stmt
	SetNext(Stmt)
}

// Scope is a lexical region owning a symbol table, a statement list and
// nested child scopes: a Module or a Procedure.
type Scope interface {
	Node
	astScope()
}

var nextNodeID int64

// newID mints the next process-wide monotonic node id. Only uniqueness
// within one compilation is required, so a package-level atomic satisfies
// that without threading a context object through every constructor.
func newID() int {
	return int(atomic.AddInt64(&nextNodeID, 1))
}

// base is embedded by every concrete node to supply ID/Token/Loc.
type base struct {
	id  int
	tok tokens.Token
}

func newBase(tok tokens.Token) base {
	return base{id: newID(), tok: tok}
}

func (b *base) ID() int                { return b.id }
func (b *base) Token() tokens.Token     { return b.tok }
func (b *base) Loc() *source.Location  { return b.tok.Location(nil) }
func (b *base) astNode()               {}

// exprBase is embedded by every expression: adds the cached TAC address
// the lowerer may attach after emitting this node's value.
type exprBase struct {
	base
	addr tac.Operand
}

func newExprBase(tok tokens.Token) exprBase {
	return exprBase{base: newBase(tok)}
}

func (e *exprBase) astExpr()                    {}
func (e *exprBase) CachedAddr() tac.Operand      { return e.addr }
func (e *exprBase) SetCachedAddr(a tac.Operand)  { e.addr = a }

// stmtBase is embedded by every statement: adds the intrusive next link.
type stmtBase struct {
	base
	next Stmt
}

func newStmtBase(tok tokens.Token) stmtBase {
	return stmtBase{base: newBase(tok)}
}

func (s *stmtBase) astStmt()        {}
func (s *stmtBase) Next() Stmt      { return s.next }
func (s *stmtBase) SetNext(n Stmt)  { s.next = n }
