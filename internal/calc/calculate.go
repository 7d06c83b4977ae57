package calc

import (
	"fmt"

	"github.com/GriffinCanCode/ucalc/internal/catalog"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

// Calculate evaluates one statement with a fresh interpreter over the
// built-in catalogue.
func Calculate(text string) (Value, error) {
	return NewInterpreter(catalog.Default()).Calculate(text)
}

// ParseScaledUnit parses and resolves a unit expression such as "km/h".
// Expressions naming a dimension twice, like "km/m", carry a Scale.
func ParseScaledUnit(reg *catalog.Registry, text string) (ScaledUnit, error) {
	expr, err := ParseUnit(text)
	if err != nil {
		return ScaledUnit{}, err
	}
	return ResolveUnit(reg, expr)
}

// ParseCompositeUnit parses a unit expression that must resolve to a plain
// composite unit. A folded scale is ErrInvalidUnit.
func ParseCompositeUnit(reg *catalog.Registry, text string) (units.CompositeUnit, error) {
	s, err := ParseScaledUnit(reg, text)
	if err != nil {
		return units.CompositeUnit{}, err
	}
	if !s.Exact() {
		return units.CompositeUnit{}, fmt.Errorf("%w: %q names a dimension twice", units.ErrInvalidUnit, text)
	}
	return s.Unit, nil
}
