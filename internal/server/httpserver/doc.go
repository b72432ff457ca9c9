// Package httpserver provides the HTTP server for console-gate.
//
// It wires the action dispatcher, the metrics endpoint and the static
// shell behind a middleware chain (panic recovery, request IDs, access
// logging, login rate limiting).
package httpserver
