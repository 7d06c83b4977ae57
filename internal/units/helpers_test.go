package units

var (
	meter   = MustUnit(NewUnit("meter", "m", Length, 1))
	foot    = MustUnit(NewUnit("foot", "ft", Length, 0.3048))
	yard    = MustUnit(NewUnit("yard", "yd", Length, 0.9144))
	gram    = MustUnit(NewUnit("gram", "g", Mass, 1))
	pound   = MustUnit(NewUnit("pound", "lb", Mass, 16*28.3495))
	second  = MustUnit(NewUnit("second", "s", Time, 1))
	minute  = MustUnit(NewUnit("minute", "min", Time, 60))
	hour    = MustUnit(NewUnit("hour", "h", Time, 3600))
	ampere  = MustUnit(NewUnit("ampere", "A", Current, 1))
	celsius = MustUnit(NewTemperatureUnit("celsius", "°C", 1, 0))
	kelvin  = MustUnit(NewTemperatureUnit("kelvin", "K", 1, 273.15))
	fahr    = MustUnit(NewTemperatureUnit("fahrenheit", "°F", 5.0/9.0, 32))

	kilometer = meter.WithPrefix(Kilo)
	kilogram  = gram.WithPrefix(Kilo)
)

const tolerance = 1e-9
