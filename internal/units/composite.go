package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Term is a fundamental unit raised to an integer power.
type Term struct {
	Unit  FundamentalUnit
	Power int
}

// String renders the term by symbol, e.g. "s^-2".
func (t Term) String() string {
	if t.Power == 1 {
		return t.Unit.Symbol()
	}
	return t.Unit.Symbol() + "^" + strconv.Itoa(t.Power)
}

type component struct {
	unit  FundamentalUnit
	power int
}

func (c component) occupied() bool { return c.power != 0 }

// CompositeUnit is a product of fundamental units with at most one unit per
// dimension. The zero value is dimensionless. CompositeUnit is comparable
// and copies never share state.
type CompositeUnit struct {
	slots [numDimensions]component
}

// NewCompositeUnit builds a composite from terms. Each dimension may appear
// once and every power must be non-zero.
func NewCompositeUnit(terms ...Term) (CompositeUnit, error) {
	var c CompositeUnit
	for _, t := range terms {
		d := t.Unit.Dimension()
		if t.Unit.IsZero() || !d.IsPhysical() {
			return CompositeUnit{}, fmt.Errorf("%w: term %v has no physical dimension", ErrInvalidUnit, t.Unit)
		}
		if t.Power == 0 {
			return CompositeUnit{}, fmt.Errorf("%w: power of %s cannot be zero", ErrInvalidValue, t.Unit.Name())
		}
		if c.slots[d].occupied() {
			return CompositeUnit{}, fmt.Errorf("%w: dimension %s given twice (%s, %s)",
				ErrInvalidUnit, d, c.slots[d].unit.Name(), t.Unit.Name())
		}
		c.slots[d] = component{unit: t.Unit, power: t.Power}
	}
	return c, nil
}

// Of returns the composite holding u to the first power.
func Of(u FundamentalUnit) CompositeUnit {
	var c CompositeUnit
	if u.Dimension().IsPhysical() && !u.IsZero() {
		c.slots[u.Dimension()] = component{unit: u, power: 1}
	}
	return c
}

// Dimensionless returns the empty composite.
func Dimensionless() CompositeUnit { return CompositeUnit{} }

// Multiply adds powers per dimension. Where both operands occupy a
// dimension the receiver's unit is kept; a power that cancels to zero
// clears the slot.
func (c CompositeUnit) Multiply(other CompositeUnit) CompositeUnit {
	return c.combine(other, 1)
}

// Divide subtracts other's powers from c's.
func (c CompositeUnit) Divide(other CompositeUnit) CompositeUnit {
	return c.combine(other, -1)
}

// MultiplyUnit is Multiply(Of(u)).
func (c CompositeUnit) MultiplyUnit(u FundamentalUnit) CompositeUnit {
	return c.Multiply(Of(u))
}

// DivideUnit is Divide(Of(u)).
func (c CompositeUnit) DivideUnit(u FundamentalUnit) CompositeUnit {
	return c.Divide(Of(u))
}

func (c CompositeUnit) combine(other CompositeUnit, sign int) CompositeUnit {
	for d := range c.slots {
		o := other.slots[d]
		if !o.occupied() {
			continue
		}
		cur := c.slots[d]
		if !cur.occupied() {
			c.slots[d] = component{unit: o.unit, power: sign * o.power}
			continue
		}
		cur.power += sign * o.power
		if cur.power == 0 {
			cur = component{}
		}
		c.slots[d] = cur
	}
	return c
}

// Pow raises every component to the n-th power. Pow(0) is dimensionless.
func (c CompositeUnit) Pow(n int) CompositeUnit {
	if n == 0 {
		return CompositeUnit{}
	}
	for d := range c.slots {
		c.slots[d].power *= n
	}
	return c
}

// Component returns the unit and power held for d. ok is false when the
// dimension is absent.
func (c CompositeUnit) Component(d Dimension) (Term, bool) {
	if !d.IsPhysical() || !c.slots[d].occupied() {
		return Term{}, false
	}
	s := c.slots[d]
	return Term{Unit: s.unit, Power: s.power}, true
}

// Components lists the occupied dimensions in dimension order.
func (c CompositeUnit) Components() []Term {
	var out []Term
	for _, s := range c.slots {
		if s.occupied() {
			out = append(out, Term{Unit: s.unit, Power: s.power})
		}
	}
	return out
}

// IsDimensionless reports whether no dimension is occupied.
func (c CompositeUnit) IsDimensionless() bool {
	return c == CompositeUnit{}
}

// Signature maps each occupied dimension to its power.
func (c CompositeUnit) Signature() map[Dimension]int {
	sig := make(map[Dimension]int)
	for d, s := range c.slots {
		if s.occupied() {
			sig[Dimension(d)] = s.power
		}
	}
	return sig
}

// CompatibleWith reports whether both units have the same power in every
// dimension.
func (c CompositeUnit) CompatibleWith(other CompositeUnit) bool {
	for d := range c.slots {
		if c.slots[d].power != other.slots[d].power {
			return false
		}
	}
	return true
}

// ConvertTo converts value from c into target. A lone temperature unit to
// the first power converts as an absolute temperature; everywhere else
// temperature is treated as an interval.
func (c CompositeUnit) ConvertTo(target CompositeUnit, value float64) (float64, error) {
	if !c.CompatibleWith(target) {
		return 0, fmt.Errorf("%w: cannot convert %s to %s", ErrIncompatibleUnits, c.describe(), target.describe())
	}
	if c.isAbsoluteTemperature() {
		return c.slots[Temperature].unit.ConvertTo(target.slots[Temperature].unit, value)
	}
	for d, s := range c.slots {
		if !s.occupied() {
			continue
		}
		ratio, err := s.unit.Ratio(target.slots[d].unit)
		if err != nil {
			return 0, err
		}
		value *= math.Pow(ratio, float64(s.power))
	}
	return value, nil
}

func (c CompositeUnit) isAbsoluteTemperature() bool {
	for d, s := range c.slots {
		if Dimension(d) == Temperature {
			if s.power != 1 {
				return false
			}
		} else if s.occupied() {
			return false
		}
	}
	return true
}

// Name renders the unit with full names, e.g. "meter/second^2".
func (c CompositeUnit) Name() string {
	return c.render(FundamentalUnit.Name)
}

// Symbol renders the unit with symbols, e.g. "kg*m/s^2".
func (c CompositeUnit) Symbol() string {
	return c.render(FundamentalUnit.Symbol)
}

// String implements fmt.Stringer using symbols.
func (c CompositeUnit) String() string { return c.Symbol() }

// describe adds the dimensional formula to the symbol for error messages.
func (c CompositeUnit) describe() string {
	var dims []string
	for d, s := range c.slots {
		if !s.occupied() {
			continue
		}
		dims = append(dims, powered(Dimension(d).Symbol(), s.power))
	}
	if len(dims) == 0 {
		return "1 [dimensionless]"
	}
	return c.Symbol() + " [" + strings.Join(dims, " ") + "]"
}

func (c CompositeUnit) render(label func(FundamentalUnit) string) string {
	var num, den []string
	for _, s := range c.slots {
		switch {
		case s.power > 0:
			num = append(num, powered(label(s.unit), s.power))
		case s.power < 0:
			den = append(den, powered(label(s.unit), -s.power))
		}
	}
	var b strings.Builder
	if len(num) == 0 {
		b.WriteString("1")
	} else {
		b.WriteString(strings.Join(num, "*"))
	}
	if len(den) > 0 {
		b.WriteString("/")
		b.WriteString(strings.Join(den, "*"))
	}
	return b.String()
}

func powered(s string, power int) string {
	if power == 1 {
		return s
	}
	return s + "^" + strconv.Itoa(power)
}
