// Package repl runs an interactive calculator over a reader and a writer.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/GriffinCanCode/ucalc/internal/calc"
)

// Prompt is printed before every line is read.
const Prompt = "ucalc> "

const banner = "ucalc unit calculator\nType 'exit' to quit, 'vars' to list variables, 'reset' to clear them.\n\n"

// Start reads lines from in until EOF or an exit command. Every statement
// on a line is evaluated and its result written to out. Errors are
// reported and the loop continues with the same variables.
func Start(in io.Reader, out io.Writer, interp *calc.Interpreter) error {
	if interp == nil {
		interp = calc.NewInterpreter(nil)
	}
	scanner := bufio.NewScanner(in)

	io.WriteString(out, banner)
	for {
		io.WriteString(out, Prompt)
		if !scanner.Scan() {
			io.WriteString(out, "\n")
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "exit", "quit":
			return nil
		case "vars":
			printVariables(out, interp.Variables())
			continue
		case "reset":
			interp.Reset()
			continue
		}

		results, err := interp.Run(line)
		for _, v := range results {
			fmt.Fprintln(out, v)
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func printVariables(out io.Writer, vars map[string]calc.Value) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "%s = %s\n", name, vars[name])
	}
}
