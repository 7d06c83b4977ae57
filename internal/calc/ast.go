package calc

import (
	"strconv"
	"strings"

	"github.com/GriffinCanCode/ucalc/internal/units"
)

// Node is a parsed statement or expression.
type Node interface {
	String() string
	node()
}

// Assignment binds the value of an expression to a variable.
type Assignment struct {
	Name  string
	Value Node
}

// Conversion expresses the value of Expr in Target.
type Conversion struct {
	Expr   Node
	Target UnitExpr
}

// Expression is an additive binary operation.
type Expression struct {
	Left  Node
	Op    string
	Right Node
}

// Term is a multiplicative binary operation.
type Term struct {
	Left  Node
	Op    string
	Right Node
}

// Negation flips the sign of its operand.
type Negation struct {
	Operand Node
}

// Measure is a number immediately followed by a unit.
type Measure struct {
	Value float64
	Unit  UnitExpr
}

// Terminal is a bare number or a variable reference.
type Terminal struct {
	Token Token
}

// UnitFactor is one named unit with an integer power. Factors written after
// a '/' carry a negative power.
type UnitFactor struct {
	Name  string
	Power int
}

// UnitExpr is a product of unit factors such as km/h or kg*m/s^2.
type UnitExpr []UnitFactor

func (*Assignment) node() {}
func (*Conversion) node() {}
func (*Expression) node() {}
func (*Term) node()       {}
func (*Negation) node()   {}
func (*Measure) node()    {}
func (*Terminal) node()   {}

func (n *Assignment) String() string { return n.Name + " = " + n.Value.String() }
func (n *Conversion) String() string { return n.Expr.String() + " -> " + n.Target.String() }
func (n *Expression) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}
func (n *Term) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}
func (n *Negation) String() string { return "-" + n.Operand.String() }
func (n *Measure) String() string  { return units.FormatValue(n.Value) + " " + n.Unit.String() }
func (n *Terminal) String() string { return n.Token.Literal }

func (u UnitExpr) String() string {
	var num, den []string
	for _, f := range u {
		if f.Power < 0 {
			den = append(den, unitPower(f.Name, -f.Power))
		} else {
			num = append(num, unitPower(f.Name, f.Power))
		}
	}
	out := "1"
	if len(num) > 0 {
		out = strings.Join(num, "*")
	}
	if len(den) > 0 {
		out += "/" + strings.Join(den, "*")
	}
	return out
}

func unitPower(name string, power int) string {
	if power == 1 {
		return name
	}
	return name + "^" + strconv.Itoa(power)
}
