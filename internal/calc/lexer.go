package calc

import (
	"fmt"
	"regexp"
)

type lexRule struct {
	typ  TokenType
	re   *regexp.Regexp
	skip bool
}

// lexRules are tried in order at the cursor; the first match wins.
var lexRules = []lexRule{
	{typ: TokenConversion, re: regexp.MustCompile(`^(?:->|(?:to|as)\b)`)},
	{typ: TokenNumber, re: regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)},
	{typ: TokenEquals, re: regexp.MustCompile(`^=`)},
	{typ: TokenAddOp, re: regexp.MustCompile(`^[+-]`)},
	{typ: TokenMulOp, re: regexp.MustCompile(`^[*/]`)},
	{typ: TokenPow, re: regexp.MustCompile(`^\^`)},
	{typ: TokenLParen, re: regexp.MustCompile(`^\(`)},
	{typ: TokenRParen, re: regexp.MustCompile(`^\)`)},
	{typ: TokenIdentifier, re: regexp.MustCompile(`^[\p{L}_°][\p{L}\p{N}_°]*`)},
	{typ: TokenNewline, re: regexp.MustCompile(`^(?:\r?\n|;)`)},
	{re: regexp.MustCompile(`^[ \t\r]+`), skip: true},
}

// Lexer splits calculator input into tokens.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// SetInput replaces the input and rewinds the cursor.
func (l *Lexer) SetInput(input string) {
	l.input = input
	l.pos = 0
}

// NextToken returns the next token. Once the input is exhausted every call
// returns an EOF token. An unknown character yields an ILLEGAL token and an
// error wrapping ErrSyntax; the cursor does not move past it.
func (l *Lexer) NextToken() (Token, error) {
	for l.pos < len(l.input) {
		rest := l.input[l.pos:]
		matched := false
		for _, r := range lexRules {
			loc := r.re.FindStringIndex(rest)
			if loc == nil || loc[1] == 0 {
				continue
			}
			start := l.pos
			l.pos += loc[1]
			if r.skip {
				matched = true
				break
			}
			return Token{Type: r.typ, Literal: rest[:loc[1]], Pos: start}, nil
		}
		if !matched {
			r := firstRune(rest)
			return Token{Type: TokenIllegal, Literal: string(r), Pos: l.pos},
				fmt.Errorf("%w: unexpected character %q at %d", ErrSyntax, r, l.pos)
		}
	}
	return Token{Type: TokenEOF, Pos: len(l.input)}, nil
}

// Tokens lexes the whole input, excluding the final EOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return out, err
		}
		if tok.Type == TokenEOF {
			return out, nil
		}
		out = append(out, tok)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
