package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("http addr = %q", cfg.Server.HTTP.Addr)
	}
	if cfg.Locale.Language != "en_US" {
		t.Errorf("language = %q", cfg.Locale.Language)
	}
	if cfg.Session.AbsoluteTimeout != 60*time.Minute {
		t.Errorf("absolute timeout = %v", cfg.Session.AbsoluteTimeout)
	}
	if cfg.Session.RememberDuration != 180*24*time.Hour {
		t.Errorf("remember duration = %v", cfg.Session.RememberDuration)
	}

	small, ok := cfg.InstanceTypes["m1.small"]
	if !ok {
		t.Fatal("default instance type catalog missing m1.small")
	}
	if small.CPU != 1 || small.Memory != 128 || small.Disk != 2 {
		t.Errorf("m1.small = %+v", small)
	}
	if len(cfg.InstanceTypes) != 5 {
		t.Errorf("instance type count = %d, want 5", len(cfg.InstanceTypes))
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{
			name:    "default with mock",
			mutate:  func(c *ServerConfig) { c.Auth.UseMock = true },
			wantErr: false,
		},
		{
			name:    "real auth without clc host",
			mutate:  func(c *ServerConfig) { c.Auth.UseMock = false; c.Server.CLCHost = "" },
			wantErr: true,
		},
		{
			name:    "real auth with clc host",
			mutate:  func(c *ServerConfig) { c.Server.CLCHost = "clc.internal" },
			wantErr: false,
		},
		{
			name:    "missing http addr",
			mutate:  func(c *ServerConfig) { c.Auth.UseMock = true; c.Server.HTTP.Addr = "" },
			wantErr: true,
		},
		{
			name:    "zero absolute timeout",
			mutate:  func(c *ServerConfig) { c.Auth.UseMock = true; c.Session.AbsoluteTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero reap interval",
			mutate:  func(c *ServerConfig) { c.Auth.UseMock = true; c.Session.ReapInterval = 0 },
			wantErr: true,
		},
		{
			name:    "negative login rate",
			mutate:  func(c *ServerConfig) { c.Auth.UseMock = true; c.Session.LoginRatePerMinute = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdminConsoleURL(t *testing.T) {
	cfg := Default()
	cfg.Server.CLCHost = "clc.example"
	if got := cfg.AdminConsoleURL(); got != "https://clc.example:8443" {
		t.Errorf("AdminConsoleURL = %q", got)
	}
}

func TestStoreReplace(t *testing.T) {
	first := Default()
	store := NewStore(first)
	if store.Current() != first {
		t.Fatal("Current should return the initial snapshot")
	}

	second := Default()
	second.Locale.Language = "de_DE"
	store.Replace(second)

	if store.Current().Locale.Language != "de_DE" {
		t.Error("Replace did not publish the new snapshot")
	}
}
