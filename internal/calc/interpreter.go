package calc

import (
	"fmt"
	"maps"
	"math"
	"strconv"

	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

// Interpreter evaluates statements against a variable environment and a
// unit registry. It is not safe for concurrent use.
type Interpreter struct {
	registry *catalog.Registry
	lexer    *Lexer
	parser   *Parser
	vars     map[string]Value
}

// NewInterpreter creates an interpreter. A nil registry uses the built-in
// catalogue.
func NewInterpreter(reg *catalog.Registry) *Interpreter {
	if reg == nil {
		reg = catalog.Default()
	}
	lexer := NewLexer("")
	return &Interpreter{
		registry: reg,
		lexer:    lexer,
		parser:   NewParser(lexer),
		vars:     make(map[string]Value),
	}
}

// Registry returns the registry units are resolved against.
func (in *Interpreter) Registry() *catalog.Registry { return in.registry }

// Calculate evaluates the first statement of text.
func (in *Interpreter) Calculate(text string) (Value, error) {
	in.setInput(text)
	return in.Interpret()
}

// Interpret evaluates the next statement of the current input and stores
// the result as ans. It returns nil, nil when no statement is left.
func (in *Interpreter) Interpret() (Value, error) {
	node, err := in.parser.Parse()
	if err != nil || node == nil {
		return nil, err
	}
	v, err := in.eval(node)
	if err != nil {
		return nil, err
	}
	in.vars[AnswerVariable] = v
	return v, nil
}

// Run evaluates every statement of text in order and returns their
// results. Evaluation stops at the first error.
func (in *Interpreter) Run(text string) ([]Value, error) {
	in.setInput(text)
	var out []Value
	for {
		v, err := in.Interpret()
		if err != nil {
			return out, err
		}
		if v == nil {
			return out, nil
		}
		out = append(out, v)
	}
}

func (in *Interpreter) setInput(text string) {
	in.lexer.SetInput(text)
	in.parser.Reset()
}

// Variables returns a copy of the environment.
func (in *Interpreter) Variables() map[string]Value {
	return maps.Clone(in.vars)
}

// SetVariable binds name directly, bypassing the parser.
func (in *Interpreter) SetVariable(name string, v Value) error {
	if name == "" || v == nil {
		return fmt.Errorf("%w: variable needs a name and a value", units.ErrInvalidOperation)
	}
	in.vars[name] = v
	return nil
}

// Reset clears every variable.
func (in *Interpreter) Reset() {
	clear(in.vars)
}

// ResolveUnit turns a parsed unit expression into a scaled unit.
func (in *Interpreter) ResolveUnit(expr UnitExpr) (ScaledUnit, error) {
	return ResolveUnit(in.registry, expr)
}

// ScaledUnit is a resolved unit expression. A dimension named twice with
// different units keeps the first unit written and folds the conversion
// between them into Scale, so "km/m" is the dimensionless unit scaled by
// 1000.
type ScaledUnit struct {
	Unit  units.CompositeUnit
	Scale float64
}

// Exact reports whether the expression is its unit without a folded scale.
func (s ScaledUnit) Exact() bool { return s.Scale == 1 }

// Of returns value expressed in the unit expression.
func (s ScaledUnit) Of(value float64) (units.Measurement, error) {
	return units.NewMeasurement(value, units.Dimensionless()).Mul(units.NewMeasurement(s.Scale, s.Unit))
}

// ResolveUnit resolves each factor of expr against reg and multiplies them
// together as measurements of magnitude one.
func ResolveUnit(reg *catalog.Registry, expr UnitExpr) (ScaledUnit, error) {
	acc := units.NewMeasurement(1, units.Dimensionless())
	for _, f := range expr {
		u, err := reg.Resolve(f.Name)
		if err != nil {
			return ScaledUnit{}, err
		}
		if acc, err = acc.Mul(units.NewMeasurement(1, units.Of(u).Pow(f.Power))); err != nil {
			return ScaledUnit{}, err
		}
	}
	return ScaledUnit{Unit: acc.Unit, Scale: acc.Value}, nil
}

// exactUnit resolves a conversion target, which must not fold a scale.
func (in *Interpreter) exactUnit(expr UnitExpr) (units.CompositeUnit, error) {
	s, err := in.ResolveUnit(expr)
	if err != nil {
		return units.CompositeUnit{}, err
	}
	if !s.Exact() {
		return units.CompositeUnit{}, fmt.Errorf("%w: %s names a dimension twice", units.ErrInvalidUnit, expr)
	}
	return s.Unit, nil
}

func (in *Interpreter) eval(node Node) (Value, error) {
	switch n := node.(type) {
	case *Assignment:
		if n.Name == AnswerVariable {
			return nil, fmt.Errorf("%w: %q is read-only", units.ErrInvalidOperation, AnswerVariable)
		}
		v, err := in.eval(n.Value)
		if err != nil {
			return nil, err
		}
		in.vars[n.Name] = v
		return v, nil

	case *Conversion:
		v, err := in.eval(n.Expr)
		if err != nil {
			return nil, err
		}
		target, err := in.exactUnit(n.Target)
		if err != nil {
			return nil, err
		}
		m, ok := v.(units.Measurement)
		if !ok {
			return nil, fmt.Errorf("%w: cannot convert number %s to %s", units.ErrInvalidOperation, v, target.Symbol())
		}
		return m.ConvertTo(target)

	case *Expression:
		return in.binary(n.Left, n.Op, n.Right)

	case *Term:
		return in.binary(n.Left, n.Op, n.Right)

	case *Negation:
		v, err := in.eval(n.Operand)
		if err != nil {
			return nil, err
		}
		switch x := v.(type) {
		case Number:
			return -x, nil
		case units.Measurement:
			return units.NewMeasurement(-x.Value, x.Unit), nil
		}

	case *Measure:
		unit, err := in.ResolveUnit(n.Unit)
		if err != nil {
			return nil, err
		}
		m, err := unit.Of(n.Value)
		if err != nil {
			return nil, err
		}
		if m.Unit.IsDimensionless() {
			return Number(m.Value), nil
		}
		return m, nil

	case *Terminal:
		switch n.Token.Type {
		case TokenNumber:
			f, err := strconv.ParseFloat(n.Token.Literal, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid number %q", ErrSyntax, n.Token.Literal)
			}
			return Number(f), nil
		case TokenIdentifier:
			v, ok := in.vars[n.Token.Literal]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUndefinedVariable, n.Token.Literal)
			}
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot evaluate %T", units.ErrInvalidOperation, node)
}

func (in *Interpreter) binary(leftNode Node, op string, rightNode Node) (Value, error) {
	left, err := in.eval(leftNode)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(rightNode)
	if err != nil {
		return nil, err
	}

	v, err := apply(left, op, right)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(units.Measurement); ok && m.Unit.IsDimensionless() {
		return Number(m.Value), nil
	}
	return v, nil
}

func apply(left Value, op string, right Value) (Value, error) {
	switch l := left.(type) {
	case Number:
		switch r := right.(type) {
		case Number:
			return numberOp(float64(l), op, float64(r))
		case units.Measurement:
			return apply(units.NewMeasurement(float64(l), units.Dimensionless()), op, r)
		}

	case units.Measurement:
		switch r := right.(type) {
		case Number:
			return scalarOp(l, op, float64(r))
		case units.Measurement:
			return measurementOp(l, op, r)
		}
	}
	return nil, fmt.Errorf("%w: %T %s %T", units.ErrInvalidOperation, left, op, right)
}

func numberOp(l float64, op string, r float64) (Value, error) {
	var out float64
	switch op {
	case "+":
		out = l + r
	case "-":
		out = l - r
	case "*":
		out = l * r
	case "/":
		if r == 0 {
			return nil, fmt.Errorf("%w: division by zero", units.ErrInvalidOperation)
		}
		out = l / r
	default:
		return nil, fmt.Errorf("%w: unknown operator %q", units.ErrInvalidOperation, op)
	}
	if math.IsInf(out, 0) || math.IsNaN(out) {
		return nil, fmt.Errorf("%w: result of %v %s %v is not finite", units.ErrInvalidValue, l, op, r)
	}
	return Number(out), nil
}

func scalarOp(m units.Measurement, op string, x float64) (Value, error) {
	switch op {
	case "*":
		return m.MulScalar(x)
	case "/":
		return m.DivScalar(x)
	case "+", "-":
		if !m.Unit.IsDimensionless() {
			return nil, fmt.Errorf("%w: cannot %s a number and %s", units.ErrInvalidOperation, verb(op), m)
		}
		if op == "+" {
			return m.AddScalar(x)
		}
		return m.SubScalar(x)
	}
	return nil, fmt.Errorf("%w: unknown operator %q", units.ErrInvalidOperation, op)
}

func measurementOp(l units.Measurement, op string, r units.Measurement) (Value, error) {
	switch op {
	case "+":
		if l.Unit.IsDimensionless() != r.Unit.IsDimensionless() {
			return nil, fmt.Errorf("%w: cannot %s a number and a measurement", units.ErrInvalidOperation, verb(op))
		}
		return l.Add(r)
	case "-":
		if l.Unit.IsDimensionless() != r.Unit.IsDimensionless() {
			return nil, fmt.Errorf("%w: cannot %s a number and a measurement", units.ErrInvalidOperation, verb(op))
		}
		return l.Sub(r)
	case "*":
		return l.Mul(r)
	case "/":
		return l.Div(r)
	}
	return nil, fmt.Errorf("%w: unknown operator %q", units.ErrInvalidOperation, op)
}

func verb(op string) string {
	if op == "-" {
		return "subtract"
	}
	return "add"
}
