// Command ucalc is an interactive unit calculator.
//
//	ucalc                      start the REPL
//	ucalc '5 m + 2 ft -> yd'   evaluate the arguments and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ucalc/internal/calc"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/config"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ucalc/internal/infrastructure/server"
	"github.com/GriffinCanCode/ucalc/internal/repl"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.LoadOrDefault()
	flag.StringVar(&cfg.Catalog.Dir, "units-dir", cfg.Catalog.Dir, "Directory of extra unit definitions")
	flag.StringVar(&cfg.Catalog.URL, "units-url", cfg.Catalog.URL, "URL of an extra unit definition document")
	flag.Parse()

	logger := logging.NewNop()
	if l, err := logging.New(logging.CLIConfig()); err == nil {
		logger = l
	}
	defer logger.Sync()

	registry, err := server.BuildRegistry(context.Background(), cfg.Catalog, logger.Component("catalog"))
	if err != nil {
		logger.Error("failed to load units", zap.Error(err))
		return 1
	}
	interp := calc.NewInterpreter(registry)

	if flag.NArg() > 0 {
		return evaluate(interp, strings.Join(flag.Args(), " "), os.Stdout, os.Stderr)
	}
	if err := repl.Start(os.Stdin, os.Stdout, interp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func evaluate(interp *calc.Interpreter, input string, stdout, stderr io.Writer) int {
	results, err := interp.Run(input)
	for _, v := range results {
		fmt.Fprintln(stdout, v)
	}
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}
