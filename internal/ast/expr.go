package ast

import (
	"fmt"
	"sync/atomic"

	"github.com/Leeingnyo/snupl-scanning/internal/symbols"
	"github.com/Leeingnyo/snupl-scanning/internal/tokens"
	"github.com/Leeingnyo/snupl-scanning/internal/types"
)

// BinOp enumerates the binary operators reaching this layer: no other
// operator tag is valid.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	And
	Or
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
)

func (o BinOp) String() string {
	switch o {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case And:
		return "&&"
	case Or:
		return "||"
	case Eq:
		return "="
	case Neq:
		return "#"
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		panic("ast: invalid BinOp tag")
	}
}

func (o BinOp) valid() bool { return o >= Add && o <= Ge }

// UnOp enumerates the unary operators.
type UnOp int

const (
	Neg UnOp = iota
	Pos
	Not
)

func (o UnOp) valid() bool { return o >= Neg && o <= Not }

// SpecialKind enumerates the address/deref/cast family.
type SpecialKind int

const (
	Address SpecialKind = iota
	Deref
	Cast
)

func (k SpecialKind) valid() bool { return k >= Address && k <= Cast }

// BinaryOp is `left op right`.
type BinaryOp struct {
	exprBase
	Op          BinOp
	Left, Right Expr
	tm          *types.Manager
}

func (b *BinaryOp) astExpr() {}

// NewBinaryOp constructs a binary operator node. Non-null operands and a
// valid operator tag are construction-time contract assertions; violations
// panic rather than surfacing as a diagnostic.
func NewBinaryOp(tok tokens.Token, op BinOp, left, right Expr, tm *types.Manager) *BinaryOp {
	if left == nil || right == nil {
		panic("ast: BinaryOp requires non-null operands")
	}
	if !op.valid() {
		panic("ast: BinaryOp has an invalid operator tag")
	}
	return &BinaryOp{exprBase: newExprBase(tok), Op: op, Left: left, Right: right, tm: tm}
}

// GetType computes the static type: int for arithmetic, bool for
// logical/relational.
func (b *BinaryOp) GetType() types.SemType {
	switch b.Op {
	case Add, Sub, Mul, Div:
		return b.tm.GetInt()
	default:
		return b.tm.GetBool()
	}
}

// UnaryOp is `op operand`.
type UnaryOp struct {
	exprBase
	Op      UnOp
	Operand Expr
	tm      *types.Manager
}

func (u *UnaryOp) astExpr() {}

func NewUnaryOp(tok tokens.Token, op UnOp, operand Expr, tm *types.Manager) *UnaryOp {
	if operand == nil {
		panic("ast: UnaryOp requires a non-null operand")
	}
	if !op.valid() {
		panic("ast: UnaryOp has an invalid operator tag")
	}
	return &UnaryOp{exprBase: newExprBase(tok), Op: op, Operand: operand, tm: tm}
}

// GetType returns int for Neg/Pos, bool for Not.
func (u *UnaryOp) GetType() types.SemType {
	if u.Op == Not {
		return u.tm.GetBool()
	}
	return u.tm.GetInt()
}

// SpecialOp is the Address/Deref/Cast family. CastType is present iff
// Op == Cast.
type SpecialOp struct {
	exprBase
	Op       SpecialKind
	Operand  Expr
	CastType types.SemType
	tm       *types.Manager
}

func (s *SpecialOp) astExpr() {}

// NewSpecialOp constructs a SpecialOp node. The construction contract
// requires the tag to be one of {Address, Deref, Cast} and CastType to be
// present exactly when Op == Cast; both directions of that biconditional
// are checked, so a non-Cast op carrying a CastType is rejected just like
// a Cast missing one.
func NewSpecialOp(tok tokens.Token, op SpecialKind, operand Expr, castType types.SemType, tm *types.Manager) *SpecialOp {
	if operand == nil {
		panic("ast: SpecialOp requires a non-null operand")
	}
	if !op.valid() {
		panic("ast: SpecialOp has an invalid operator tag")
	}
	if (op == Cast) != (castType != nil) {
		panic("ast: SpecialOp cast type must be present iff Op == Cast")
	}
	return &SpecialOp{exprBase: newExprBase(tok), Op: op, Operand: operand, CastType: castType, tm: tm}
}

// GetType: Address yields pointer-to-operand, Deref yields the pointer's
// base type, Cast yields the requested type.
func (s *SpecialOp) GetType() types.SemType {
	switch s.Op {
	case Address:
		return s.tm.GetPointer(s.Operand.GetType())
	case Deref:
		if ptr, ok := s.Operand.GetType().(*types.PointerType); ok {
			return ptr.GetBaseType()
		}
		return s.tm.GetNull()
	default:
		return s.CastType
	}
}

// FunctionCall is a call to symbol with an ordered argument list.
type FunctionCall struct {
	exprBase
	Symbol *symbols.Symbol
	Args   []Expr
}

func (f *FunctionCall) astExpr() {}

func NewFunctionCall(tok tokens.Token, sym *symbols.Symbol) *FunctionCall {
	if sym == nil {
		panic("ast: FunctionCall requires a non-null symbol")
	}
	return &FunctionCall{exprBase: newExprBase(tok), Symbol: sym}
}

// AddArg appends the next argument, in call order.
func (f *FunctionCall) AddArg(arg Expr) { f.Args = append(f.Args, arg) }

// GetType is the callee's declared return type (the manager's null type
// for a procedure called as a statement).
func (f *FunctionCall) GetType() types.SemType { return f.Symbol.GetDataType() }

// Designator is a plain identifier reference.
type Designator struct {
	exprBase
	Symbol *symbols.Symbol
}

func (d *Designator) astExpr() {}

func NewDesignator(tok tokens.Token, sym *symbols.Symbol) *Designator {
	if sym == nil {
		panic("ast: Designator requires a non-null symbol")
	}
	return &Designator{exprBase: newExprBase(tok), Symbol: sym}
}

func (d *Designator) GetType() types.SemType { return d.Symbol.GetDataType() }

// arrayState is ArrayDesignator's only stateful transition.
type arrayState int

const (
	arrayOpen arrayState = iota
	arrayClosed
)

// ArrayDesignator indexes into an array- or pointer-to-array-typed symbol.
// It starts Open and transitions to Closed exactly once, on
// IndicesComplete; adding an index afterwards is a contract violation.
type ArrayDesignator struct {
	exprBase
	Symbol  *symbols.Symbol
	Indices []Expr
	state   arrayState
	tm      *types.Manager
}

func (a *ArrayDesignator) astExpr() {}

func NewArrayDesignator(tok tokens.Token, sym *symbols.Symbol, tm *types.Manager) *ArrayDesignator {
	if sym == nil {
		panic("ast: ArrayDesignator requires a non-null symbol")
	}
	return &ArrayDesignator{exprBase: newExprBase(tok), Symbol: sym, state: arrayOpen, tm: tm}
}

// AddIndex appends the next index expression. Panics if called after
// IndicesComplete.
func (a *ArrayDesignator) AddIndex(idx Expr) {
	if a.state == arrayClosed {
		panic("ast: ArrayDesignator.AddIndex called after IndicesComplete")
	}
	a.Indices = append(a.Indices, idx)
}

// IndicesComplete closes the index list; no further indices may be added.
func (a *ArrayDesignator) IndicesComplete() { a.state = arrayClosed }

// Done reports whether IndicesComplete has been called.
func (a *ArrayDesignator) Done() bool { return a.state == arrayClosed }

// baseArrayType auto-unwraps one pointer level, per the typechecker's
// ArrayDesignator rule: the underlying symbol type may itself be a
// pointer to an array (by-reference parameter passing).
func (a *ArrayDesignator) baseArrayType() types.SemType {
	t := a.Symbol.GetDataType()
	if ptr, ok := t.(*types.PointerType); ok {
		return ptr.GetBaseType()
	}
	return t
}

// GetType returns the type reached after unwrapping len(Indices) array
// dimensions, or the manager's null type if indices exceed the array's
// rank.
func (a *ArrayDesignator) GetType() types.SemType {
	t := a.baseArrayType()
	for range a.Indices {
		arr, ok := t.(*types.ArrayType)
		if !ok {
			return a.tm.GetNull()
		}
		t = arr.GetInnerType()
	}
	return t
}

// ConstKind is the declared type of a Constant: int, char, or bool.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstChar
	ConstBool
)

// Constant is a scalar literal with a 64-bit signed value (range-checked
// against its declared type during type checking, not at construction).
type Constant struct {
	exprBase
	Kind  ConstKind
	Value int64
	tm    *types.Manager
}

func (c *Constant) astExpr() {}

func NewConstant(tok tokens.Token, kind ConstKind, value int64, tm *types.Manager) *Constant {
	return &Constant{exprBase: newExprBase(tok), Kind: kind, Value: value, tm: tm}
}

func (c *Constant) GetType() types.SemType {
	switch c.Kind {
	case ConstInt:
		return c.tm.GetInt()
	case ConstChar:
		return c.tm.GetChar()
	case ConstBool:
		return c.tm.GetBool()
	default:
		panic(fmt.Sprintf("ast: invalid Constant kind %d", c.Kind))
	}
}

// StringConstant is a raw string literal. Construction synthesizes a fresh
// global symbol `_str_<n>` (n monotonically increasing, process-wide) of
// type array[len(unescape(Value))+1] of char, registers it in the
// enclosing scope's table, and binds a character-data initializer to it.
type StringConstant struct {
	exprBase
	Value  string
	Symbol *symbols.Symbol
}

func (s *StringConstant) astExpr() {}

var nextStrIdx int64

// NewStringConstant registers value's backing symbol in scope and returns
// the constructed node. tm supplies the char/array types for the synthesized
// symbol.
func NewStringConstant(tok tokens.Token, value string, scope symbolDeclarer, tm *types.Manager) *StringConstant {
	idx := atomic.AddInt64(&nextStrIdx, 1)
	name := fmt.Sprintf("_str_%d", idx)
	unescaped := unescapeString(value)
	length := len(unescaped) + 1
	arrType := tm.GetArray(length, tm.GetChar())
	sym := symbols.NewSymbol(name, symbols.Global, arrType)
	sym.SetInitializer(append([]byte(unescaped), 0))
	if scope != nil {
		_ = scope.Declare(name, sym)
	}
	return &StringConstant{exprBase: newExprBase(tok), Value: value, Symbol: sym}
}

// unescapeString resolves backslash escapes in a raw string literal's text
// the way the lexer's token escapes are defined: \n, \t, \", \\ and \0
// collapse to their single-byte value; any other backslash-led pair is
// passed through unchanged (the lexer never produces one).
func unescapeString(value string) []byte {
	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		if value[i] != '\\' || i+1 >= len(value) {
			out = append(out, value[i])
			continue
		}
		switch value[i+1] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case '0':
			out = append(out, 0)
		default:
			out = append(out, value[i], value[i+1])
		}
		i++
	}
	return out
}

func (s *StringConstant) GetType() types.SemType { return s.Symbol.GetDataType() }

// symbolDeclarer is the narrow slice of *table.SymbolTable StringConstant
// needs: just enough to register its synthesized symbol, so any table-like
// value with a Declare method can receive it.
type symbolDeclarer interface {
	Declare(name string, sym *symbols.Symbol) error
}
