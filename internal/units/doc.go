// Package units implements the dimensional algebra behind ucalc.
//
// A FundamentalUnit is tied to exactly one Dimension and knows how many SI
// base units it represents. A CompositeUnit holds at most one fundamental
// unit per dimension, each raised to a non-zero integer power, and a
// Measurement pairs a float64 value with a CompositeUnit.
//
// Every type in this package is an immutable value. Multiplying or dividing
// units always builds a new CompositeUnit, so a unit can be shared between
// measurements without copying.
//
// Example Usage:
//
//	meter, _ := units.NewUnit("meter", "m", units.Length, 1)
//	second, _ := units.NewUnit("second", "s", units.Time, 1)
//	speed := units.Of(meter).DivideUnit(second)
//	m := units.NewMeasurement(3, speed)
//	fmt.Println(m) // 3 m/s
package units
