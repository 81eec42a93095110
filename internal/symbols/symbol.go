// Package symbols is the symbol façade consumed by the type checker and
// the lowerer: named entities declared by a scope (globals, locals,
// parameters, procedures).
package symbols

import "github.com/Leeingnyo/snupl-scanning/internal/types"

// Kind categorizes a symbol by where it lives.
type Kind int

const (
	Global Kind = iota
	Local
	Param
	Proc
)

func (k Kind) String() string {
	switch k {
	case Global:
		return "global"
	case Local:
		return "local"
	case Param:
		return "parameter"
	case Proc:
		return "procedure"
	default:
		return "<unknown>"
	}
}

// Symbol is a single declared entity: a variable, a parameter, or a
// procedure/function.
type Symbol struct {
	name string
	kind Kind
	typ  types.SemType

	// params is only meaningful for Kind == Proc: the procedure's
	// parameter list in declaration order.
	params []*Symbol

	// retType is only meaningful for Kind == Proc.
	retType types.SemType

	// init, when non-nil, is the symbol's compile-time initializer data.
	// Only globals synthesized for string literals carry one.
	init []byte
}

// NewSymbol creates a plain variable/parameter symbol.
func NewSymbol(name string, kind Kind, typ types.SemType) *Symbol {
	return &Symbol{name: name, kind: kind, typ: typ}
}

// NewProc creates a procedure/function symbol. retType is the manager's
// null type for a procedure with no return value.
func NewProc(name string, params []*Symbol, retType types.SemType) *Symbol {
	return &Symbol{name: name, kind: Proc, typ: retType, params: params, retType: retType}
}

func (s *Symbol) GetName() string         { return s.name }
func (s *Symbol) GetKind() Kind           { return s.kind }
func (s *Symbol) GetDataType() types.SemType { return s.typ }

// GetNParams returns the number of declared parameters. Only meaningful on
// a procedure symbol.
func (s *Symbol) GetNParams() int { return len(s.params) }

// GetParam returns the i-th declared parameter. Only meaningful on a
// procedure symbol; panics if i is out of range, matching the original
// compiler's assert-style contract on malformed internal state.
func (s *Symbol) GetParam(i int) *Symbol {
	if i < 0 || i >= len(s.params) {
		panic("symbols: parameter index out of range")
	}
	return s.params[i]
}

// SetInitializer attaches compile-time initializer bytes (used for
// synthesized string-literal globals).
func (s *Symbol) SetInitializer(data []byte) { s.init = data }

// Initializer returns the symbol's initializer data, or nil if it has none.
func (s *Symbol) Initializer() []byte { return s.init }
