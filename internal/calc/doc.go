// Package calc implements the calculator language: a regexp-driven lexer,
// a recursive-descent parser and a tree-walking interpreter over
// units.Measurement values.
//
// Statements are assignments, expressions or conversions:
//
//	x = 5 m
//	x + 2 ft -> yd
//	9.81 m/s^2 * 3 s
//	ans to km/h
//
// Newlines and semicolons separate statements. The interpreter stores every
// result under "ans".
//
// Example Usage:
//
//	in := calc.NewInterpreter(catalog.Default())
//	v, err := in.Calculate("5 m + 2 ft -> yd")
package calc
