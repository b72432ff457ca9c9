// Package auth is the boundary to the external credential authority.
package auth

import (
	"time"
)

// Config selects and parameterizes the authenticator implementation.
type Config struct {
	UseMock        bool
	CLCHost        string
	CLCPort        int
	SessionTimeout time.Duration
}

// New returns the authenticator selected by configuration: the mock
// stub or the real token client. Selection happens exactly once, at
// startup; callers only ever see the interface.
func New(cfg Config) Authenticator {
	if cfg.UseMock {
		return NewMock()
	}
	return NewTokenClient(cfg.CLCHost, cfg.CLCPort, cfg.SessionTimeout)
}
