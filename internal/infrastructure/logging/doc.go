// Package logging builds zap loggers for the service and the CLI.
//
// Production loggers write JSON tagged with the service name. Development
// loggers write colored console output. The CLI logger only reports
// warnings, on stderr. Levels can be changed while running with SetLevel.
//
//	logger, err := logging.New(logging.DefaultConfig())
//	logger.Component("catalog").Info("units loaded", zap.Int("count", n))
package logging
