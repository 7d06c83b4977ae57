package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"5 m + 2 ft -> yd", []TokenType{TokenNumber, TokenIdentifier, TokenAddOp, TokenNumber, TokenIdentifier, TokenConversion, TokenIdentifier}},
		{"x = 1.5e3 km", []TokenType{TokenIdentifier, TokenEquals, TokenNumber, TokenIdentifier}},
		{"3 ton to kg", []TokenType{TokenNumber, TokenIdentifier, TokenConversion, TokenIdentifier}},
		{"2 m as ft", []TokenType{TokenNumber, TokenIdentifier, TokenConversion, TokenIdentifier}},
		{"9.81 m/s^2", []TokenType{TokenNumber, TokenIdentifier, TokenMulOp, TokenIdentifier, TokenPow, TokenNumber}},
		{"(1 m) * 2", []TokenType{TokenLParen, TokenNumber, TokenIdentifier, TokenRParen, TokenMulOp, TokenNumber}},
		{"20 °C; .5 μm\n", []TokenType{TokenNumber, TokenIdentifier, TokenNewline, TokenNumber, TokenIdentifier, TokenNewline}},
		{"assets tons", []TokenType{TokenIdentifier, TokenIdentifier}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := NewLexer(tt.input).Tokens()
			require.NoError(t, err)
			var got []TokenType
			for _, tok := range toks {
				got = append(got, tok.Type)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexerLiteralsAndPositions(t *testing.T) {
	toks, err := NewLexer("x  = 12.5 km").Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Token{Type: TokenIdentifier, Literal: "x", Pos: 0}, toks[0])
	assert.Equal(t, Token{Type: TokenEquals, Literal: "=", Pos: 3}, toks[1])
	assert.Equal(t, Token{Type: TokenNumber, Literal: "12.5", Pos: 5}, toks[2])
	assert.Equal(t, Token{Type: TokenIdentifier, Literal: "km", Pos: 10}, toks[3])
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := NewLexer("1")
	_, err := l.NextToken()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		tok, err := l.NextToken()
		require.NoError(t, err)
		assert.Equal(t, TokenEOF, tok.Type)
	}

	l.SetInput("2")
	tok, err := l.NextToken()
	require.NoError(t, err)
	assert.Equal(t, "2", tok.Literal)
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := NewLexer("5 $")
	_, err := l.NextToken()
	require.NoError(t, err)

	tok, err := l.NextToken()
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Equal(t, TokenIllegal, tok.Type)
	assert.Equal(t, 2, tok.Pos)
	assert.Contains(t, err.Error(), "'$'")
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "CONVERSION", TokenConversion.String())
	assert.Equal(t, "TokenType(99)", TokenType(99).String())
}
