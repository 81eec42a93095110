// Package table implements the scoped symbol table consumed by the type
// checker (indirectly, through symbols already attached to AST nodes) and
// directly by the lowerer to resolve the DIM/DOFS runtime helpers used in
// array address arithmetic.
package table

import (
	"fmt"

	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// SymbolTable holds the symbols declared in one scope (module or
// procedure), chained to its parent for lexical lookup.
type SymbolTable struct {
	parent  *SymbolTable
	symbols map[string]*symbols.Symbol
}

// New creates a symbol table with an optional parent scope.
func New(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{parent: parent, symbols: make(map[string]*symbols.Symbol)}
}

// Declare adds a symbol to this table. It is an error to redeclare a name
// already present in this exact scope (shadowing an outer scope is fine).
func (st *SymbolTable) Declare(name string, sym *symbols.Symbol) error {
	if _, exists := st.symbols[name]; exists {
		return fmt.Errorf("symbol %q already declared", name)
	}
	st.symbols[name] = sym
	return nil
}

// Lookup finds a symbol in this scope or any enclosing scope.
func (st *SymbolTable) Lookup(name string) (*symbols.Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil, false
}

// GetSymbol finds a symbol declared directly in this scope, without
// consulting parents.
func (st *SymbolTable) GetSymbol(name string) (*symbols.Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// FindSymbol resolves a name the way the lowerer needs it: like Lookup,
// searching outward through enclosing scopes.
func (st *SymbolTable) FindSymbol(name string) *symbols.Symbol {
	sym, _ := st.Lookup(name)
	return sym
}

// runtimeHelperSymbols builds the two runtime helpers (DIM and DOFS) the
// lowerer emits calls to when computing an array element's address.
// NewModuleTable declares them once in a module's root symbol table so
// FindSymbol can resolve them
// the same way a user-declared procedure would be resolved.
func runtimeHelperSymbols(m *types.Manager) (dim, dofs *symbols.Symbol) {
	ptrParam := symbols.NewSymbol("a", symbols.Param, m.GetPointer(m.GetNull()))
	kParam := symbols.NewSymbol("n", symbols.Param, m.GetInt())
	dim = symbols.NewProc("DIM", []*symbols.Symbol{ptrParam, kParam}, m.GetInt())
	dofs = symbols.NewProc("DOFS", []*symbols.Symbol{ptrParam}, m.GetInt())
	return dim, dofs
}

// NewModuleTable creates a root symbol table pre-populated with the DIM and
// DOFS runtime helpers every array access lowers through.
func NewModuleTable(m *types.Manager) *SymbolTable {
	st := New(nil)
	dim, dofs := runtimeHelperSymbols(m)
	_ = st.Declare(dim.GetName(), dim)
	_ = st.Declare(dofs.GetName(), dofs)
	return st
}
