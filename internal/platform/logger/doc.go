// Package logger provides structured logging for the services using the
// standard library's log/slog package, plus helpers to carry a request-scoped
// logger through a context.Context.
package logger
