package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input length limits (in bytes)
const (
	MaxExpressionLength = 4096
	MaxUnitLength       = 256
)

// ErrInvalidInput reports text rejected before it reaches the parser.
var ErrInvalidInput = errors.New("invalid input")

// TextValidator checks free-form input against a length limit
type TextValidator struct {
	field     string
	maxLength int
	multiline bool
}

// NewTextValidator creates a validator for the named field
func NewTextValidator(field string, maxLength int, multiline bool) *TextValidator {
	return &TextValidator{field: field, maxLength: maxLength, multiline: multiline}
}

var (
	expressionValidator = NewTextValidator("expression", MaxExpressionLength, true)
	unitValidator       = NewTextValidator("unit", MaxUnitLength, false)
)

// Validate checks that s is non-blank UTF-8 within the length limit and
// free of control characters. Multiline fields also accept newlines and tabs.
func (v *TextValidator) Validate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidInput, v.field)
	}
	if len(s) > v.maxLength {
		return fmt.Errorf("%w: %s length %d exceeds maximum %d", ErrInvalidInput, v.field, len(s), v.maxLength)
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrInvalidInput, v.field)
	}
	for i, r := range s {
		if !unicode.IsControl(r) {
			continue
		}
		if v.multiline && (r == '\n' || r == '\r' || r == '\t') {
			continue
		}
		return fmt.Errorf("%w: %s has control character %U at offset %d", ErrInvalidInput, v.field, r, i)
	}
	return nil
}

// ValidateExpression validates calculator input.
func ValidateExpression(s string) error { return expressionValidator.Validate(s) }

// ValidateUnit validates a standalone unit expression such as "km/h".
func ValidateUnit(s string) error { return unitValidator.Validate(s) }
