// Package utils validates untrusted text before it reaches the calculator.
//
// Validation:
//   - Blank input is rejected
//   - Expressions are capped at MaxExpressionLength bytes, units at MaxUnitLength
//   - Input must be valid UTF-8 without control characters
//
// Every failure wraps ErrInvalidInput.
//
// Example Usage:
//
//	if err := utils.ValidateExpression(input); err != nil {
//	    return err
//	}
package utils
