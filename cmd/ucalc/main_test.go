package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/ucalc/internal/calc"
)

func TestEvaluate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := evaluate(calc.NewInterpreter(nil), "x = 2 km; x -> m", &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "2 km\n2000 m\n", stdout.String())
	assert.Empty(t, stderr.String())

	stdout.Reset()
	code = evaluate(calc.NewInterpreter(nil), "1 m; 1 m + 1 s", &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "1 m\n", stdout.String())
	assert.Contains(t, stderr.String(), "error:")
}
