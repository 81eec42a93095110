package diagnostics

// Error codes for the middle-end: six classes, each covering a family of
// related type-checking failures.
const (
	// Type mismatch (operator/operand, assignment, argument, condition,
	// return, array index).
	ErrTypeMismatch = "T0001"

	// Shape mismatch (array assignment, index count, call arity,
	// superfluous/missing return expression).
	ErrShapeMismatch = "T0002"

	// Value domain (integer/character/boolean constant out of range).
	ErrValueDomain = "T0003"

	// Operand shape (Address on non-array, Deref on non-pointer).
	ErrOperandShape = "T0004"

	// Unsupported (Cast is always rejected).
	ErrUnsupported = "T0005"

	// Invalid symbol (designator whose symbol has no type).
	ErrInvalidSymbol = "T0006"
)
