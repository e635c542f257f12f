// Package logging provides structured logging utilities for gcal-reminder.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "exchange_code")
//	logger.Info("authorization code exchanged",
//	    logging.Status(logging.StatusSuccess))
//
// Tokens are never logged directly; use SanitizeToken.
package logging
