// Package tac implements the three-address code sink the lowerer emits
// into: labels, temporaries, operands and the linear instruction stream
// itself, plus the post-emit cleanup pass. One marker interface per
// concern, flattened to label/goto control flow rather than SSA basic
// blocks.
package tac

import (
	"fmt"

	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
)

// Operand is anything an instruction can read from or write to: a
// constant, a named symbol reference, a temporary, a label (used as a jump
// target), or a reference operand.
type Operand interface {
	tacOperand()
	String() string
}

// Label is both an Operand (a jump target) and an Instr (a landing pad
// that can be appended to the instruction stream in its own right).
type Label struct {
	id   int
	name string
}

func (l *Label) tacOperand() {}
func (l *Label) tacInstr()   {}
func (l *Label) String() string {
	if l.name != "" {
		return l.name
	}
	return fmt.Sprintf("L%d", l.id)
}

// Temp is a fresh named temporary result of some computation.
type Temp struct {
	id   int
	name string
}

func (t *Temp) tacOperand()   {}
func (t *Temp) String() string {
	if t.name != "" {
		return t.name
	}
	return fmt.Sprintf("t%d", t.id)
}

// Const is an integer-valued constant operand. Booleans lower to 0/1 and
// characters to their byte value, so a single 64-bit field covers all three
// scalar kinds.
type Const struct {
	Value int64
}

func (Const) tacOperand()     {}
func (c Const) String() string { return fmt.Sprintf("%d", c.Value) }

// Name is an operand referring directly to a declared symbol (a variable,
// parameter, or procedure name).
type Name struct {
	Symbol *symbols.Symbol
}

func (Name) tacOperand()     {}
func (n Name) String() string { return n.Symbol.GetName() }

// Reference is a computed-address operand: `(base, symbol)`. Base is the
// temporary or name holding the computed address; Symbol preserves the
// original identifier the address was computed from, for diagnostics and
// any downstream alias analysis (glossary: "Reference operand").
type Reference struct {
	Base   Operand
	Symbol *symbols.Symbol
}

func (Reference) tacOperand() {}
func (r Reference) String() string {
	return fmt.Sprintf("[%s]%s", r.Base.String(), r.Symbol.GetName())
}
