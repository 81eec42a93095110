// Package types is the type system façade consumed by the type checker and
// the lowerer: a small, process-wide catalog of SnuPL/1's primitive, pointer
// and array types.
package types

import "fmt"

// SemType is the semantic representation of a SnuPL/1 type.
//
// Types are immutable after creation, equality (Match) is structural, and
// every type reports its own byte size for the lowerer's address
// arithmetic.
type SemType interface {
	String() string
	Size() int
	IsScalar() bool
	IsArray() bool
	IsPointer() bool

	// Match reports structural equality. Array lengths are matched
	// modulo an "open" wildcard (Length < 0), which is how an array
	// parameter declared without a fixed length is allowed to bind to
	// any concretely sized argument.
	Match(other SemType) bool

	// isType prevents external packages from implementing SemType.
	isType()
}

// Kind enumerates the four primitive kinds SnuPL/1 knows about.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindChar
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "<null>"
	case KindInt:
		return "integer"
	case KindChar:
		return "char"
	case KindBool:
		return "boolean"
	default:
		return "<unknown>"
	}
}

// primitiveType is a singleton scalar type.
type primitiveType struct {
	kind Kind
	size int
}

func (p *primitiveType) String() string   { return p.kind.String() }
func (p *primitiveType) Size() int        { return p.size }
func (p *primitiveType) IsScalar() bool    { return p.kind != KindNull }
func (p *primitiveType) IsArray() bool     { return false }
func (p *primitiveType) IsPointer() bool   { return false }
func (p *primitiveType) isType()           {}
func (p *primitiveType) Match(o SemType) bool {
	op, ok := o.(*primitiveType)
	return ok && op.kind == p.kind
}

// Kind reports this primitive's kind.
func (p *primitiveType) Kind() Kind { return p.kind }

// PointerType is a pointer to another type, used for passing arrays by
// reference and for the internal address-of/dereference operators.
type PointerType struct {
	Base SemType
}

func (t *PointerType) String() string { return "pointer to " + t.Base.String() }
func (t *PointerType) Size() int      { return 8 }
func (t *PointerType) IsScalar() bool { return true }
func (t *PointerType) IsArray() bool  { return false }
func (t *PointerType) IsPointer() bool { return true }
func (t *PointerType) isType()        {}
func (t *PointerType) Match(o SemType) bool {
	op, ok := o.(*PointerType)
	return ok && t.Base.Match(op.Base)
}

// GetBaseType returns the type this pointer points to.
func (t *PointerType) GetBaseType() SemType { return t.Base }

// ArrayType is a (possibly multi-dimensional, via nested Elem) array type.
// Length < 0 marks an "open" array, the shape used for array-reference
// parameters whose size is supplied at the call site.
type ArrayType struct {
	Length int
	Elem   SemType
}

func (t *ArrayType) String() string {
	if t.Length < 0 {
		return fmt.Sprintf("array [] of %s", t.Elem.String())
	}
	return fmt.Sprintf("array [%d] of %s", t.Length, t.Elem.String())
}

func (t *ArrayType) Size() int {
	if t.Length < 0 {
		return 8 // open arrays are passed by reference
	}
	return t.Length * t.Elem.Size()
}

func (t *ArrayType) IsScalar() bool  { return false }
func (t *ArrayType) IsArray() bool   { return true }
func (t *ArrayType) IsPointer() bool { return false }
func (t *ArrayType) isType()         {}

func (t *ArrayType) Match(o SemType) bool {
	ot, ok := o.(*ArrayType)
	if !ok {
		return false
	}
	if t.Length >= 0 && ot.Length >= 0 && t.Length != ot.Length {
		return false
	}
	return t.Elem.Match(ot.Elem)
}

// GetInnerType unwraps exactly one array dimension.
func (t *ArrayType) GetInnerType() SemType { return t.Elem }

// Commonly used singleton instances, vended by the Manager below.
var (
	typeNull = &primitiveType{kind: KindNull, size: 0}
	typeInt  = &primitiveType{kind: KindInt, size: 4}
	typeChar = &primitiveType{kind: KindChar, size: 1}
	typeBool = &primitiveType{kind: KindBool, size: 1}
)

// Manager vends the process-wide type singletons: GetInt/GetBool/...
// return one shared instance per kind so callers can compare types by
// identity as a fast path and fall back to Match for anything structural.
type Manager struct{}

// NewManager returns a type manager. It holds no state of its own: every
// primitive is a package-level singleton and composite types (pointer,
// array) are plain value constructors.
func NewManager() *Manager { return &Manager{} }

func (m *Manager) GetNull() SemType { return typeNull }
func (m *Manager) GetInt() SemType  { return typeInt }
func (m *Manager) GetChar() SemType { return typeChar }
func (m *Manager) GetBool() SemType { return typeBool }

// GetPointer returns a pointer type to base.
func (m *Manager) GetPointer(base SemType) SemType {
	return &PointerType{Base: base}
}

// GetArray returns an array type of the given length over elem. A negative
// length constructs an open (unsized) array type.
func (m *Manager) GetArray(length int, elem SemType) SemType {
	return &ArrayType{Length: length, Elem: elem}
}
