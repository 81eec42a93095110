package diagnostics

import "github.com/Leeingnyo/snupl-scanning/internal/tokens"

// The builders below give each diagnostic message its own named
// constructor instead of inlining message strings at every call site in
// the type checker.

func TypeMismatch(tok tokens.Token, message string) *Diagnostic {
	return New(ErrTypeMismatch, message, tok)
}

func ShapeMismatch(tok tokens.Token, message string) *Diagnostic {
	return New(ErrShapeMismatch, message, tok)
}

func ValueDomain(tok tokens.Token, message string) *Diagnostic {
	return New(ErrValueDomain, message, tok)
}

func OperandShape(tok tokens.Token, message string) *Diagnostic {
	return New(ErrOperandShape, message, tok)
}

func Unsupported(tok tokens.Token, message string) *Diagnostic {
	return New(ErrUnsupported, message, tok)
}

func InvalidSymbol(tok tokens.Token, message string) *Diagnostic {
	return New(ErrInvalidSymbol, message, tok)
}

func WrongArgumentCount(tok tokens.Token) *Diagnostic {
	return ShapeMismatch(tok, "number of arguments does not match the number of parameters")
}

func TooManyIndices(tok tokens.Token) *Diagnostic {
	return ShapeMismatch(tok, "Too many indices")
}

func NotEnoughIndices(tok tokens.Token) *Diagnostic {
	return ShapeMismatch(tok, "Not enough indices")
}

func ExpressionExpectedAfterReturn(tok tokens.Token) *Diagnostic {
	return ShapeMismatch(tok, "expression expected after return.")
}

func SuperfluousExpressionAfterReturn(tok tokens.Token) *Diagnostic {
	return ShapeMismatch(tok, "superfluous expression after return.")
}
