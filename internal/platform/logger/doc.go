// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package with text or JSON
// output and configurable log levels, and carries request-scoped loggers
// through context.Context.
package logger
