// Package logger provides structured logging for scribe components
// using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped child loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("pipeline")
//	log.Info("processing started", logger.Fields("file", name))
package logger
