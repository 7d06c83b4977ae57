package calc

import (
	"github.com/GriffinCanCode/ucalc/internal/units"
)

// Value is the result of evaluating an expression: a Number or a
// units.Measurement.
type Value interface {
	String() string
}

// Number is a dimensionless scalar.
type Number float64

func (n Number) String() string { return units.FormatValue(float64(n)) }

var (
	_ Value = Number(0)
	_ Value = units.Measurement{}
)

// AnswerVariable always holds the most recent result.
const AnswerVariable = "ans"
