package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ucalc/internal/calc"
)

func run(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Start(strings.NewReader(input), &out, calc.NewInterpreter(nil)))
	return out.String()
}

func TestStartEvaluatesLines(t *testing.T) {
	out := run(t, "2 + 3\nx = 4 m\nx * 2\n")

	assert.Contains(t, out, Prompt)
	assert.Contains(t, out, "5\n")
	assert.Contains(t, out, "8 m\n")
	assert.Equal(t, 4, strings.Count(out, Prompt))
}

func TestStartReportsErrorsAndContinues(t *testing.T) {
	out := run(t, "y + 1\n1 m + 1 s\n7\n")

	assert.Equal(t, 2, strings.Count(out, "error: "))
	assert.Contains(t, out, "7\n")
}

func TestStartExit(t *testing.T) {
	for _, cmd := range []string{"exit", "quit", "  exit  "} {
		out := run(t, "1\n"+cmd+"\n2 + 2\n")
		assert.NotContains(t, out, "4\n", cmd)
	}
}

func TestStartVariablesAndReset(t *testing.T) {
	out := run(t, "b = 2; a = 1\nvars\nreset\nvars\na\n")

	iA := strings.Index(out, "a = 1\n")
	iB := strings.Index(out, "b = 2\n")
	require.NotEqual(t, -1, iA)
	require.NotEqual(t, -1, iB)
	assert.Less(t, iA, iB)
	assert.Contains(t, out, "ans = 1\n")
	assert.Contains(t, out, "error: ")
}

func TestStartMultipleStatementsPerLine(t *testing.T) {
	out := run(t, "1; 2; 3\n")
	assert.Contains(t, out, "1\n2\n3\n")
}
