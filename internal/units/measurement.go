package units

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
)

// Measurement is a value expressed in a CompositeUnit.
type Measurement struct {
	Value float64
	Unit  CompositeUnit
}

// NewMeasurement pairs value with unit.
func NewMeasurement(value float64, unit CompositeUnit) Measurement {
	return Measurement{Value: value, Unit: unit}
}

// FromUnit is NewMeasurement(value, Of(u)).
func FromUnit(value float64, u FundamentalUnit) Measurement {
	return Measurement{Value: value, Unit: Of(u)}
}

// ConvertTo expresses m in target.
func (m Measurement) ConvertTo(target CompositeUnit) (Measurement, error) {
	v, err := m.Unit.ConvertTo(target, m.Value)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: v, Unit: target}, nil
}

// Add converts other into m's unit and sums the values.
func (m Measurement) Add(other Measurement) (Measurement, error) {
	v, err := other.Unit.ConvertTo(m.Unit, other.Value)
	if err != nil {
		return Measurement{}, fmt.Errorf("add: %w", err)
	}
	return Measurement{Value: m.Value + v, Unit: m.Unit}, nil
}

// Sub converts other into m's unit and subtracts it.
func (m Measurement) Sub(other Measurement) (Measurement, error) {
	v, err := other.Unit.ConvertTo(m.Unit, other.Value)
	if err != nil {
		return Measurement{}, fmt.Errorf("subtract: %w", err)
	}
	return Measurement{Value: m.Value - v, Unit: m.Unit}, nil
}

// Mul multiplies two measurements. Dimensions present in both are first
// expressed in m's unit so the result keeps a single unit per dimension.
func (m Measurement) Mul(other Measurement) (Measurement, error) {
	return finite(Measurement{
		Value: m.Value * m.aligned(other),
		Unit:  m.Unit.Multiply(other.Unit),
	})
}

// Div divides m by other, aligning shared dimensions like Mul.
func (m Measurement) Div(other Measurement) (Measurement, error) {
	if other.Value == 0 {
		return Measurement{}, fmt.Errorf("%w: division by zero %s", ErrInvalidOperation, other)
	}
	return finite(Measurement{
		Value: m.Value / m.aligned(other),
		Unit:  m.Unit.Divide(other.Unit),
	})
}

func finite(m Measurement) (Measurement, error) {
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) {
		return Measurement{}, fmt.Errorf("%w: result in %s is not finite", ErrInvalidValue, m.Unit.Symbol())
	}
	return m, nil
}

// aligned returns other's value with every dimension shared with m
// rescaled into m's unit for that dimension.
func (m Measurement) aligned(other Measurement) float64 {
	v := other.Value
	for d, s := range other.Unit.slots {
		mine := m.Unit.slots[d]
		if !s.occupied() || !mine.occupied() || s.unit == mine.unit {
			continue
		}
		ratio, err := s.unit.Ratio(mine.unit)
		if err != nil {
			continue
		}
		v *= math.Pow(ratio, float64(s.power))
	}
	return v
}

// MulScalar scales the value by factor.
func (m Measurement) MulScalar(factor float64) (Measurement, error) {
	if err := checkScalar(factor); err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: m.Value * factor, Unit: m.Unit}, nil
}

// DivScalar divides the value by divisor.
func (m Measurement) DivScalar(divisor float64) (Measurement, error) {
	if err := checkScalar(divisor); err != nil {
		return Measurement{}, err
	}
	if divisor == 0 {
		return Measurement{}, fmt.Errorf("%w: division by zero", ErrInvalidOperation)
	}
	return Measurement{Value: m.Value / divisor, Unit: m.Unit}, nil
}

// AddScalar adds x to the value without touching the unit.
func (m Measurement) AddScalar(x float64) (Measurement, error) {
	if err := checkScalar(x); err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: m.Value + x, Unit: m.Unit}, nil
}

// SubScalar subtracts x from the value without touching the unit.
func (m Measurement) SubScalar(x float64) (Measurement, error) {
	if err := checkScalar(x); err != nil {
		return Measurement{}, err
	}
	return Measurement{Value: m.Value - x, Unit: m.Unit}, nil
}

func checkScalar(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: scalar must be finite, got %v", ErrInvalidValue, x)
	}
	return nil
}

// ApproxEqual reports whether other, converted into m's unit, lies within
// tol of m either absolutely or relatively.
func (m Measurement) ApproxEqual(other Measurement, tol float64) bool {
	v, err := other.Unit.ConvertTo(m.Unit, other.Value)
	if err != nil {
		return false
	}
	return scalar.EqualWithinAbsOrRel(m.Value, v, tol, tol)
}

// String renders "value symbol". Dimensionless measurements print the value
// alone.
func (m Measurement) String() string {
	if m.Unit.IsDimensionless() {
		return FormatValue(m.Value)
	}
	return FormatValue(m.Value) + " " + m.Unit.Symbol()
}

// FormatValue prints v in plain decimal notation for everyday magnitudes
// and in exponent notation otherwise.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-4 && abs < 1e15) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
