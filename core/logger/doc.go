// Package logger provides a structured logging facility based on Zap.
//
// New builds a production (json) or development (debug) logger from Config.
// Loggers are passed explicitly to the components that need them; nothing in
// this module installs a process-wide logger.
//
// WithRayID extracts the request id set by the rayid middleware from a Fiber
// context and attaches it to the log entry.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started", zap.String("locator", path))
package logger
