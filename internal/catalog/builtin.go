package catalog

import (
	"sync"

	"github.com/GriffinCanCode/ucalc/internal/units"
)

const (
	gramsPerOunce = 28.3495
	degreeRankine = 5.0 / 9.0
)

// definition describes a built-in unit. For affine temperature units scale
// is the degree size in kelvin and offset the reading at 0 °C.
type definition struct {
	name, symbol string
	dim          units.Dimension
	scale        float64
	affine       bool
	offset       float64
}

func linear(name, symbol string, dim units.Dimension, scale float64) definition {
	return definition{name: name, symbol: symbol, dim: dim, scale: scale}
}

func temperature(name, symbol string, degree, offset float64) definition {
	return definition{name: name, symbol: symbol, dim: units.Temperature, scale: degree, affine: true, offset: offset}
}

// builtins is ordered by dimension and, within a dimension, by how common
// the unit is. Resolution scans in this order.
var builtins = []definition{
	// length, in meters
	linear("meter", "m", units.Length, 1),
	linear("inch", "in", units.Length, 0.0254),
	linear("foot", "ft", units.Length, 0.3048),
	linear("yard", "yd", units.Length, 0.9144),
	linear("mile", "mi", units.Length, 1609.344),
	linear("thou", "mil", units.Length, 0.0000254),
	linear("hand", "hh", units.Length, 0.1016),
	linear("nautical_mile", "nmi", units.Length, 1852),
	linear("fathom", "ftm", units.Length, 1.8288),
	linear("cable", "cbl", units.Length, 185.2),
	linear("rod", "rd", units.Length, 5.0292),
	linear("chain", "ch", units.Length, 20.1168),
	linear("furlong", "fur", units.Length, 201.168),

	// mass, in grams
	linear("gram", "g", units.Mass, 1),
	linear("ounce", "oz", units.Mass, gramsPerOunce),
	linear("pound", "lb", units.Mass, 16*gramsPerOunce),
	linear("stone", "st", units.Mass, 224*gramsPerOunce),
	linear("short_ton", "tn", units.Mass, 32000*gramsPerOunce),
	linear("long_ton", "LT", units.Mass, 35840*gramsPerOunce),
	linear("slug", "slug", units.Mass, 514.785*gramsPerOunce),
	linear("grain", "gr", units.Mass, 0.06479891),
	linear("pennyweight", "dwt", units.Mass, 1.55517384),
	linear("troy_ounce", "oz_t", units.Mass, 31.1034768),
	linear("troy_pound", "lb_t", units.Mass, 373.2417216),
	linear("carat", "ct", units.Mass, 0.2),
	linear("dalton", "Da", units.Mass, 1.66053906660e-24),
	linear("atomic_mass_unit", "amu", units.Mass, 1.66053906660e-24),

	// time, in seconds
	linear("second", "s", units.Time, 1),
	linear("minute", "min", units.Time, 60),
	linear("hour", "h", units.Time, 3600),
	linear("day", "d", units.Time, 86400),
	linear("week", "wk", units.Time, 604800),
	linear("month", "mo", units.Time, 2592000),
	linear("year", "yr", units.Time, 31536000),

	// temperature
	temperature("celsius", "°C", 1, 0),
	temperature("fahrenheit", "°F", degreeRankine, 32),
	temperature("kelvin", "K", 1, 273.15),
	temperature("rankine", "°R", degreeRankine, 491.67),

	// electric current, in amperes
	linear("ampere", "A", units.Current, 1),
	linear("abampere", "abA", units.Current, 10),
	linear("statampere", "statA", units.Current, 3.33564e-10),

	linear("mole", "mol", units.AmountOfSubstance, 1),
	linear("candela", "cd", units.LuminousIntensity, 1),
}

func (d definition) build() (units.FundamentalUnit, error) {
	if d.affine {
		return units.NewTemperatureUnit(d.name, d.symbol, d.scale, d.offset)
	}
	return units.NewUnit(d.name, d.symbol, d.dim, d.scale)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	list := make([]units.FundamentalUnit, 0, len(builtins))
	for _, d := range builtins {
		list = append(list, units.MustUnit(d.build()))
	}
	r, err := New(list...)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the registry of built-in units. It is shared and
// immutable.
func Default() *Registry {
	return defaultRegistry()
}
