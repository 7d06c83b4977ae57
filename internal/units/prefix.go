package units

import "math"

// MetricPrefix is a power-of-ten scale modifier. The zero value is Base.
type MetricPrefix uint8

const (
	Base MetricPrefix = iota
	Yotta
	Zetta
	Exa
	Peta
	Tera
	Giga
	Mega
	Kilo
	Hecto
	Deca
	Deci
	Centi
	Milli
	Micro
	Nano
	Pico
	Femto
	Atto
	Zepto
	Yocto
)

type prefixInfo struct {
	name     string
	symbol   string
	exponent int
}

var prefixTable = [...]prefixInfo{
	Base:  {"", "", 0},
	Yotta: {"yotta", "Y", 24},
	Zetta: {"zetta", "Z", 21},
	Exa:   {"exa", "E", 18},
	Peta:  {"peta", "P", 15},
	Tera:  {"tera", "T", 12},
	Giga:  {"giga", "G", 9},
	Mega:  {"mega", "M", 6},
	Kilo:  {"kilo", "k", 3},
	Hecto: {"hecto", "h", 2},
	Deca:  {"deca", "da", 1},
	Deci:  {"deci", "d", -1},
	Centi: {"centi", "c", -2},
	Milli: {"milli", "m", -3},
	Micro: {"micro", "μ", -6},
	Nano:  {"nano", "n", -9},
	Pico:  {"pico", "p", -12},
	Femto: {"femto", "f", -15},
	Atto:  {"atto", "a", -18},
	Zepto: {"zepto", "z", -21},
	Yocto: {"yocto", "y", -24},
}

// ordered from largest to smallest
var prefixOrder = []MetricPrefix{
	Yotta, Zetta, Exa, Peta, Tera, Giga, Mega, Kilo, Hecto, Deca,
	Base,
	Deci, Centi, Milli, Micro, Nano, Pico, Femto, Atto, Zepto, Yocto,
}

// symbolAliases maps alternative spellings of prefix symbols.
var symbolAliases = map[string]MetricPrefix{
	"µ": Micro, // U+00B5 MICRO SIGN
	"u": Micro,
}

// Prefixes returns every prefix from yotta down to yocto, Base included.
func Prefixes() []MetricPrefix {
	out := make([]MetricPrefix, len(prefixOrder))
	copy(out, prefixOrder)
	return out
}

// Name returns the lower-case prefix name, empty for Base.
func (p MetricPrefix) Name() string { return p.info().name }

// Symbol returns the prefix symbol, empty for Base.
func (p MetricPrefix) Symbol() string { return p.info().symbol }

// Exponent returns the power of ten the prefix stands for.
func (p MetricPrefix) Exponent() int { return p.info().exponent }

// Scale returns 10^Exponent.
func (p MetricPrefix) Scale() float64 { return math.Pow10(p.Exponent()) }

// String implements fmt.Stringer.
func (p MetricPrefix) String() string {
	if p == Base {
		return "base"
	}
	return p.Name()
}

// ConvertTo rescales value expressed with prefix p into prefix other.
func (p MetricPrefix) ConvertTo(other MetricPrefix, value float64) float64 {
	diff := p.Exponent() - other.Exponent()
	if diff == 0 {
		return value
	}
	return value * math.Pow10(diff)
}

func (p MetricPrefix) info() prefixInfo {
	if int(p) >= len(prefixTable) {
		return prefixTable[Base]
	}
	return prefixTable[p]
}

// PrefixByName finds a prefix by its full name. The empty name is Base.
func PrefixByName(name string) (MetricPrefix, bool) {
	for _, p := range prefixOrder {
		if p.Name() == name {
			return p, true
		}
	}
	return Base, false
}

// PrefixBySymbol finds a prefix by symbol. The empty symbol is Base.
func PrefixBySymbol(symbol string) (MetricPrefix, bool) {
	if p, ok := symbolAliases[symbol]; ok {
		return p, true
	}
	for _, p := range prefixOrder {
		if p.Symbol() == symbol {
			return p, true
		}
	}
	return Base, false
}
