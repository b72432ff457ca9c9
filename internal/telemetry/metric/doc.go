// Package metric provides Prometheus metrics for console-gate.
//
// It exposes session lifecycle counters, the live session gauge and
// per-action request metrics on the /metrics endpoint.
package metric
