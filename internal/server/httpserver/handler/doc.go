// Package handler implements the action dispatcher and its
// processors.
//
// Every console request arrives as POST / with a form field "action".
// The dispatcher resolves the session for authenticated actions,
// enforces the forgery-token check, runs the processor and converts
// any failure into a uniform {code, message} JSON error. Processors
// never write error responses themselves.
package handler
