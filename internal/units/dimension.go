package units

import "strings"

// Dimension is one of the seven SI base quantities, or Unitless.
type Dimension uint8

const (
	Length Dimension = iota
	Mass
	Time
	Current
	Temperature
	AmountOfSubstance
	LuminousIntensity
	Unitless
)

// numDimensions counts the physical dimensions a CompositeUnit can hold.
const numDimensions = int(Unitless)

var dimensionNames = [...]string{
	Length:            "length",
	Mass:              "mass",
	Time:              "time",
	Current:           "current",
	Temperature:       "temperature",
	AmountOfSubstance: "amount of substance",
	LuminousIntensity: "luminous intensity",
	Unitless:          "unitless",
}

var dimensionSymbols = [...]string{
	Length:            "L",
	Mass:              "M",
	Time:              "T",
	Current:           "I",
	Temperature:       "Θ",
	AmountOfSubstance: "N",
	LuminousIntensity: "J",
	Unitless:          "1",
}

var dimensionAliases = map[string]Dimension{
	"amount":              AmountOfSubstance,
	"amount_of_substance": AmountOfSubstance,
	"luminosity":          LuminousIntensity,
	"luminous_intensity":  LuminousIntensity,
	"luminous":            LuminousIntensity,
	"electric current":    Current,
	"electric_current":    Current,
	"coefficient":         Unitless,
}

// Dimensions returns the physical dimensions in slot order.
func Dimensions() []Dimension {
	out := make([]Dimension, numDimensions)
	for i := range out {
		out[i] = Dimension(i)
	}
	return out
}

// String returns the lower-case dimension name.
func (d Dimension) String() string {
	if int(d) >= len(dimensionNames) {
		return "unknown"
	}
	return dimensionNames[d]
}

// Symbol returns the conventional dimensional symbol (L, M, T, ...).
func (d Dimension) Symbol() string {
	if int(d) >= len(dimensionSymbols) {
		return "?"
	}
	return dimensionSymbols[d]
}

// IsPhysical reports whether d can occupy a CompositeUnit slot.
func (d Dimension) IsPhysical() bool {
	return int(d) < numDimensions
}

// ParseDimension accepts dimension names case-insensitively.
func ParseDimension(s string) (Dimension, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range dimensionNames {
		if name == key {
			return Dimension(i), true
		}
	}
	d, ok := dimensionAliases[key]
	return d, ok
}
