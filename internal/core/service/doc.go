// Package service provides the domain services for console-gate:
// session lifecycle (login, logout, resolution and the idle reaper)
// and the read-only deployment metadata bundled into responses.
package service
