package ast

import (
	"fmt"

	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
	"github.com/Leeingnyo/snupl-scanning/internal/table"
	"github.com/Leeingnyo/snupl-scanning/internal/tokens"
)

// Module is the root scope of a compilation unit. Variables declared
// directly in a Module are global.
type Module struct {
	base
	Symbols    *table.SymbolTable
	Statements Stmt
	Children   []Scope
}

func (m *Module) astScope() {}

// NewModule creates an empty module scope backed by st.
func NewModule(tok tokens.Token, st *table.SymbolTable) *Module {
	return &Module{base: newBase(tok), Symbols: st}
}

// SetStatementSequence installs m's top-level statement list. Part of the
// limited post-construction mutation contract nodes otherwise don't allow.
func (m *Module) SetStatementSequence(first Stmt) { m.Statements = first }

// AddChild records a nested scope, in declaration order.
func (m *Module) AddChild(s Scope) { m.Children = append(m.Children, s) }

// Procedure is a scope nested under a parent scope; variables declared
// directly in a Procedure are locals. Its Symbol carries the declared
// return type and parameter list.
type Procedure struct {
	base
	Parent     Scope
	Symbol     *symbols.Symbol
	Symbols    *table.SymbolTable
	Statements Stmt
	Children   []Scope
}

func (p *Procedure) astScope() {}

// NewProcedure creates a nested procedure scope. parent and sym are
// required: a Procedure without either is a construction contract
// violation, not a user-facing error, so this panics rather than
// returning an error.
func NewProcedure(tok tokens.Token, parent Scope, sym *symbols.Symbol, st *table.SymbolTable) *Procedure {
	if parent == nil {
		panic(fmt.Sprintf("ast: Procedure %q constructed without a parent scope", tok.Value))
	}
	if sym == nil {
		panic(fmt.Sprintf("ast: Procedure %q constructed without a procedure symbol", tok.Value))
	}
	p := &Procedure{base: newBase(tok), Parent: parent, Symbol: sym, Symbols: st}
	switch owner := parent.(type) {
	case *Module:
		owner.AddChild(p)
	case *Procedure:
		owner.AddChild(p)
	}
	return p
}

// SetStatementSequence installs p's top-level statement list.
func (p *Procedure) SetStatementSequence(first Stmt) { p.Statements = first }

// AddChild records a nested scope, in declaration order.
func (p *Procedure) AddChild(s Scope) { p.Children = append(p.Children, s) }
