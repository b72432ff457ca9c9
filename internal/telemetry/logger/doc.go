// Package logger configures structured logging for console-gate.
//
// It wraps log/slog with JSON output, a dynamically adjustable level
// and automatic redaction: the authority credentials a session holds
// (session token, access key, secret key) and user passwords must
// never appear in log output, even when a value is logged by mistake.
package logger
