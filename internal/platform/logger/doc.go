// Package logger provides structured logging for the application: a
// slog-based JSON logger configured from the server config, plus helpers for
// carrying a request-scoped logger in a context.
package logger
