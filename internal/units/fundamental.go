package units

import (
	"fmt"
	"math"
	"strings"
)

// absoluteZeroCelsius is 0 K expressed in degrees Celsius.
const absoluteZeroCelsius = -273.15

// FundamentalUnit is a named unit of exactly one dimension. It is a
// comparable value: two units are equal when every field matches.
type FundamentalUnit struct {
	baseName   string
	baseSymbol string
	dimension  Dimension
	prefix     MetricPrefix
	// scale is the number of SI base units in one unprefixed unit.
	// For temperature it is the size of one degree in kelvin.
	scale float64
	// offset is the reading of a temperature unit at 0 °C.
	offset float64
}

// NewUnit creates a multiplicative unit worth scale SI base units.
// A temperature unit built this way is measured from absolute zero.
func NewUnit(name, symbol string, dim Dimension, scale float64) (FundamentalUnit, error) {
	if err := validateUnit(name, symbol, dim); err != nil {
		return FundamentalUnit{}, err
	}
	if !isPositiveFinite(scale) {
		return FundamentalUnit{}, fmt.Errorf("%w: scale of %q must be positive and finite, got %v", ErrInvalidValue, name, scale)
	}
	u := FundamentalUnit{
		baseName:   name,
		baseSymbol: symbol,
		dimension:  dim,
		scale:      scale,
	}
	if dim == Temperature {
		u.offset = -absoluteZeroCelsius / scale
	}
	return u, nil
}

// NewTemperatureUnit creates an affine temperature unit. degree is the size
// of one degree in kelvin and offset is the reading at 0 °C, so
// celsius = (v - offset) * degree.
func NewTemperatureUnit(name, symbol string, degree, offset float64) (FundamentalUnit, error) {
	if err := validateUnit(name, symbol, Temperature); err != nil {
		return FundamentalUnit{}, err
	}
	if !isPositiveFinite(degree) {
		return FundamentalUnit{}, fmt.Errorf("%w: degree of %q must be positive and finite, got %v", ErrInvalidValue, name, degree)
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return FundamentalUnit{}, fmt.Errorf("%w: offset of %q must be finite", ErrInvalidValue, name)
	}
	return FundamentalUnit{
		baseName:   name,
		baseSymbol: symbol,
		dimension:  Temperature,
		scale:      degree,
		offset:     offset,
	}, nil
}

// MustUnit is NewUnit for static tables; it panics on invalid input.
func MustUnit(u FundamentalUnit, err error) FundamentalUnit {
	if err != nil {
		panic(err)
	}
	return u
}

func validateUnit(name, symbol string, dim Dimension) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: unit name cannot be empty", ErrInvalidUnit)
	}
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: symbol of %q cannot be empty", ErrInvalidUnit, name)
	}
	if !dim.IsPhysical() {
		return fmt.Errorf("%w: %q must belong to a physical dimension, got %s", ErrInvalidUnit, name, dim)
	}
	return nil
}

func isPositiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}

// WithPrefix returns a copy of u carrying prefix p.
func (u FundamentalUnit) WithPrefix(p MetricPrefix) FundamentalUnit {
	u.prefix = p
	return u
}

// Name returns the prefixed unit name, e.g. "kilometer".
func (u FundamentalUnit) Name() string { return u.prefix.Name() + u.baseName }

// Symbol returns the prefixed unit symbol, e.g. "km".
func (u FundamentalUnit) Symbol() string { return u.prefix.Symbol() + u.baseSymbol }

// BaseName returns the name without prefix.
func (u FundamentalUnit) BaseName() string { return u.baseName }

// BaseSymbol returns the symbol without prefix.
func (u FundamentalUnit) BaseSymbol() string { return u.baseSymbol }

// Dimension returns the dimension the unit measures.
func (u FundamentalUnit) Dimension() Dimension { return u.dimension }

// Prefix returns the metric prefix applied to the unit.
func (u FundamentalUnit) Prefix() MetricPrefix { return u.prefix }

// IsZero reports whether u is the zero value rather than a constructed unit.
func (u FundamentalUnit) IsZero() bool { return u.baseName == "" }

// ScaleToBase returns how many SI base units one u is worth.
func (u FundamentalUnit) ScaleToBase() float64 {
	return u.scale * u.prefix.Scale()
}

// CanConvertTo reports whether both units measure the same dimension.
func (u FundamentalUnit) CanConvertTo(other FundamentalUnit) bool {
	return u.dimension == other.dimension
}

// Ratio returns the multiplicative factor from u to other. For temperature
// it compares degree sizes, which is correct for intervals only.
func (u FundamentalUnit) Ratio(other FundamentalUnit) (float64, error) {
	if !u.CanConvertTo(other) {
		return 0, u.incompatible(other)
	}
	if u.sameScale(other) {
		return u.prefix.ConvertTo(other.prefix, 1), nil
	}
	return u.ScaleToBase() / other.ScaleToBase(), nil
}

// ConvertTo converts value from u into other. Temperatures convert through
// Celsius because their scales do not share a zero.
func (u FundamentalUnit) ConvertTo(other FundamentalUnit, value float64) (float64, error) {
	if !u.CanConvertTo(other) {
		return 0, u.incompatible(other)
	}
	if u.dimension == Temperature {
		return other.fromCelsius(u.toCelsius(value)), nil
	}
	if u.sameScale(other) {
		return u.prefix.ConvertTo(other.prefix, value), nil
	}
	return value * u.ScaleToBase() / other.ScaleToBase(), nil
}

// sameScale reports whether both units differ by prefix alone, in which case
// the prefix ratio is exact.
func (u FundamentalUnit) sameScale(other FundamentalUnit) bool {
	return u.baseName == other.baseName && u.scale == other.scale
}

func (u FundamentalUnit) toCelsius(value float64) float64 {
	return (value*u.prefix.Scale() - u.offset) * u.scale
}

func (u FundamentalUnit) fromCelsius(c float64) float64 {
	return (c/u.scale + u.offset) / u.prefix.Scale()
}

func (u FundamentalUnit) incompatible(other FundamentalUnit) error {
	return fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)",
		ErrIncompatibleUnits, u.Name(), u.dimension, other.Name(), other.dimension)
}

// String returns "name (symbol)".
func (u FundamentalUnit) String() string {
	return fmt.Sprintf("%s (%s)", u.Name(), u.Symbol())
}
