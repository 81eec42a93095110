// Package diagnostics carries the middle-end's single-error contract: the
// type checker reports at most one diagnostic, a (token, message) pair
// with a code attached for programmatic matching. There are no severity
// levels and no multi-label reports; a scope's type checking stops at the
// first failure.
package diagnostics

import "github.com/Leeingnyo/snupl-scanning/internal/tokens"

// Diagnostic is the first (and only) failure encountered while type
// checking a tree.
type Diagnostic struct {
	Code    string
	Message string
	Token   tokens.Token
}

// New creates a diagnostic anchored at tok.
func New(code, message string, tok tokens.Token) *Diagnostic {
	return &Diagnostic{Code: code, Message: message, Token: tok}
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return ""
	}
	return d.Message
}
