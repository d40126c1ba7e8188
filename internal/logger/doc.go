// Package logger provides structured logging for the service using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields. Components obtain a
// tagged logger via WithComponent and log with optional field maps:
//
//	log := logger.WithComponent("user-service")
//	log.Info("user registered", logger.Fields("email", email))
package logger
