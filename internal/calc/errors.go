package calc

import "errors"

var (
	// ErrSyntax reports input the lexer or parser cannot accept.
	ErrSyntax = errors.New("syntax error")
	// ErrUndefinedVariable reports a reference to an unbound name.
	ErrUndefinedVariable = errors.New("undefined variable")
)
