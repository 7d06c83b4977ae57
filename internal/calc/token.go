package calc

import "fmt"

// TokenType classifies a lexeme.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenNewline
	TokenNumber
	TokenIdentifier
	TokenConversion
	TokenEquals
	TokenAddOp
	TokenMulOp
	TokenPow
	TokenLParen
	TokenRParen
)

var tokenNames = [...]string{
	TokenEOF:        "EOF",
	TokenIllegal:    "ILLEGAL",
	TokenNewline:    "NEWLINE",
	TokenNumber:     "NUMBER",
	TokenIdentifier: "IDENTIFIER",
	TokenConversion: "CONVERSION",
	TokenEquals:     "EQUALS",
	TokenAddOp:      "ADD_OP",
	TokenMulOp:      "MUL_OP",
	TokenPow:        "POW",
	TokenLParen:     "LPAREN",
	TokenRParen:     "RPAREN",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenNames[t]
}

// Token is a lexeme with its byte offset in the input.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "end of statement"
	default:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	}
}
