package tac

import (
	"github.com/Leeingnyo/snupl-scanning/internal/table"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// Sink is the narrow interface the lowerer emits into. The middle-end
// never constructs a CodeBlock directly through a wider surface than this.
type Sink interface {
	CreateLabel() *Label
	CreateTemp(typ types.SemType) *Temp
	AddInstr(instr Instr)
	GetOwner() *table.SymbolTable
	CleanupControlFlow()
}

// CodeBlock is the concrete Sink every scope owns: a label/temp factory
// plus the linear instruction stream those labels and temps get appended
// to.
type CodeBlock struct {
	owner  *table.SymbolTable
	instrs []Instr

	nextLabel int
	nextTemp  int
}

// New creates an empty code block owned by st (used to resolve DIM/DOFS
// during array lowering).
func New(st *table.SymbolTable) *CodeBlock {
	return &CodeBlock{owner: st}
}

func (cb *CodeBlock) CreateLabel() *Label {
	cb.nextLabel++
	return &Label{id: cb.nextLabel}
}

func (cb *CodeBlock) CreateTemp(typ types.SemType) *Temp {
	cb.nextTemp++
	return &Temp{id: cb.nextTemp}
}

func (cb *CodeBlock) AddInstr(instr Instr) {
	cb.instrs = append(cb.instrs, instr)
}

func (cb *CodeBlock) GetOwner() *table.SymbolTable { return cb.owner }

// Instructions returns the block's instruction stream in emission order.
func (cb *CodeBlock) Instructions() []Instr { return cb.instrs }

// CleanupControlFlow is the post-emit pass invoked once per top-level
// scope: it elides a Goto that jumps straight to the very next
// instruction (a redundant jump to an immediately-following label), and
// drops unreachable instructions between an unconditional Goto/Return and
// the next label (a dead tail with no incoming edge).
func (cb *CodeBlock) CleanupControlFlow() {
	out := make([]Instr, 0, len(cb.instrs))
	n := len(cb.instrs)

	i := 0
	for i < n {
		instr := cb.instrs[i]

		if op, ok := instr.(*Instruction); ok && (op.Op == OpGoto || op.Op == OpReturn) {
			if op.Op == OpGoto {
				if target, ok := op.Dest.(*Label); ok && i+1 < n {
					if next, ok := cb.instrs[i+1].(*Label); ok && next == target {
						i++
						continue
					}
				}
			}
			out = append(out, instr)
			i++
			for i < n {
				if _, isLabel := cb.instrs[i].(*Label); isLabel {
					break
				}
				i++
			}
			continue
		}

		out = append(out, instr)
		i++
	}

	cb.instrs = out
}
