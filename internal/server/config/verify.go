// Package config defines the console-gate server configuration.
package config

import "errors"

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if cfg.Server.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}

	// The real delegate needs a controller to talk to; the mock does not.
	if !cfg.Auth.UseMock && cfg.Server.CLCHost == "" {
		return errors.New("server.clc_host is required unless auth.use_mock is set")
	}

	if cfg.Session.AbsoluteTimeout <= 0 {
		return errors.New("session.absolute_timeout must be positive")
	}
	if cfg.Session.ReapInterval <= 0 {
		return errors.New("session.reap_interval must be positive")
	}
	if cfg.Session.RememberDuration <= 0 {
		return errors.New("session.remember_duration must be positive")
	}
	if cfg.Session.LoginRatePerMinute < 0 {
		return errors.New("session.login_rate_per_minute must not be negative")
	}

	return nil
}
