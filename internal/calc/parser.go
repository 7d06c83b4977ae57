package calc

import (
	"fmt"
	"strconv"
)

// Parser builds one statement at a time from a Lexer. Grammar:
//
//	statement  := IDENTIFIER '=' expression
//	            | expression (CONVERSION unit)?
//	expression := term (('+'|'-') term)*
//	term       := factor (('*'|'/') factor)*
//	factor     := ('+'|'-') factor | NUMBER unit? | IDENTIFIER | '(' expression ')'
//	unit       := unitfactor (('*'|'/') unitfactor)*
//	unitfactor := IDENTIFIER ('^' '-'? NUMBER)?
//
// After a number, '*' or '/' followed by an identifier continues the unit,
// so "5 m/s" is one measure; "(5 m) * x" multiplies by a variable. Every
// unit factor after the first '/' is in the denominator: "J/kg*K" is
// J/(kg*K).
type Parser struct {
	lexer  *Lexer
	cur    Token
	peek   Token
	lexErr error
	ready  bool
}

// NewParser creates a parser reading from l.
func NewParser(l *Lexer) *Parser {
	return &Parser{lexer: l}
}

// Reset discards buffered tokens after the lexer input changed.
func (p *Parser) Reset() {
	p.cur, p.peek = Token{}, Token{}
	p.lexErr = nil
	p.ready = false
}

// Parse returns the next statement, or nil at end of input.
func (p *Parser) Parse() (Node, error) {
	if !p.ready {
		p.advance()
		p.advance()
		p.ready = true
	}

	for p.cur.Type == TokenNewline {
		p.advance()
	}
	if p.cur.Type == TokenEOF {
		return nil, nil
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	switch p.cur.Type {
	case TokenNewline:
		p.advance()
	case TokenEOF:
	default:
		return nil, p.unexpected()
	}
	return stmt, nil
}

// ParseUnit parses a standalone unit expression such as "kg*m/s^2".
func ParseUnit(text string) (UnitExpr, error) {
	p := NewParser(NewLexer(text))
	p.advance()
	p.advance()
	p.ready = true
	u, err := p.parseUnit()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, p.unexpected()
	}
	return u, nil
}

// advance shifts the lookahead. An illegal token is never consumed, so the
// parser stops at it and reports the lexer's error.
func (p *Parser) advance() {
	if p.cur.Type == TokenIllegal && p.ready {
		return
	}
	p.cur = p.peek
	if p.peek.Type == TokenIllegal {
		return
	}
	tok, err := p.lexer.NextToken()
	if err != nil {
		p.lexErr = err
	}
	p.peek = tok
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if p.cur.Type != t {
		if p.cur.Type == TokenIllegal {
			return Token{}, p.lexErr
		}
		return Token{}, fmt.Errorf("%w: expected %s, got %s at %d", ErrSyntax, t, p.cur, p.cur.Pos)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

func (p *Parser) unexpected() error {
	if p.cur.Type == TokenIllegal {
		return p.lexErr
	}
	return fmt.Errorf("%w: unexpected token %s at %d", ErrSyntax, p.cur, p.cur.Pos)
}

func (p *Parser) parseStatement() (Node, error) {
	if p.cur.Type == TokenIdentifier && p.peek.Type == TokenEquals {
		name := p.cur.Literal
		p.advance()
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: name, Value: value}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenConversion {
		return expr, nil
	}
	p.advance()
	target, err := p.parseUnit()
	if err != nil {
		return nil, err
	}
	return &Conversion{Expr: expr, Target: target}, nil
}

func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenAddOp {
		op := p.cur.Literal
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Expression{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenMulOp {
		op := p.cur.Literal
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &Term{Left: left, Op: op, Right: right}
	}
	return left, nil
}

func (p *Parser) parseFactor() (Node, error) {
	switch p.cur.Type {
	case TokenAddOp:
		op := p.cur.Literal
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if op == "-" {
			return &Negation{Operand: operand}, nil
		}
		return operand, nil

	case TokenNumber:
		tok := p.cur
		value, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q at %d", ErrSyntax, tok.Literal, tok.Pos)
		}
		p.advance()
		if p.cur.Type != TokenIdentifier {
			return &Terminal{Token: tok}, nil
		}
		unit, err := p.parseUnit()
		if err != nil {
			return nil, err
		}
		return &Measure{Value: value, Unit: unit}, nil

	case TokenIdentifier:
		tok := p.cur
		p.advance()
		return &Terminal{Token: tok}, nil

	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.unexpected()
}

func (p *Parser) parseUnit() (UnitExpr, error) {
	first, err := p.parseUnitFactor(1)
	if err != nil {
		return nil, err
	}
	unit := UnitExpr{first}
	sign := 1
	for p.cur.Type == TokenMulOp && p.peek.Type == TokenIdentifier {
		if p.cur.Literal == "/" {
			sign = -1
		}
		p.advance()
		f, err := p.parseUnitFactor(sign)
		if err != nil {
			return nil, err
		}
		unit = append(unit, f)
	}
	return unit, nil
}

func (p *Parser) parseUnitFactor(sign int) (UnitFactor, error) {
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return UnitFactor{}, err
	}
	power := 1
	if p.cur.Type == TokenPow {
		p.advance()
		neg := false
		if p.cur.Type == TokenAddOp {
			neg = p.cur.Literal == "-"
			p.advance()
		}
		tok, err := p.expect(TokenNumber)
		if err != nil {
			return UnitFactor{}, err
		}
		n, err := strconv.Atoi(tok.Literal)
		if err != nil || n == 0 {
			return UnitFactor{}, fmt.Errorf("%w: unit power must be a non-zero integer, got %q at %d", ErrSyntax, tok.Literal, tok.Pos)
		}
		if neg {
			n = -n
		}
		power = n
	}
	return UnitFactor{Name: name.Literal, Power: sign * power}, nil
}
