package units

import "errors"

var (
	// ErrIncompatibleUnits reports a dimension or power mismatch.
	ErrIncompatibleUnits = errors.New("incompatible units")
	// ErrInvalidUnit reports a value that cannot act as a unit.
	ErrInvalidUnit = errors.New("invalid unit")
	// ErrInvalidOperation reports an operator applied to an unsupported operand.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidValue reports a malformed numeric input such as NaN or a zero power.
	ErrInvalidValue = errors.New("invalid value")
)
