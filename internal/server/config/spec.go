// Package config defines the console-gate server configuration.
package config

import (
	"time"

	"github.com/cloudward/console-gate/internal/core/domain"
)

// ServerConfig is the root configuration for console-gate.
type ServerConfig struct {
	Server        ServerSection                     `koanf:"server"`
	Locale        LocaleSection                     `koanf:"locale"`
	Auth          AuthSection                       `koanf:"auth"`
	Session       SessionSection                    `koanf:"session"`
	InstanceTypes map[string]domain.InstanceProfile `koanf:"instance_types"`
	Log           LogSection                        `koanf:"log"`
}

// ServerSection configures the HTTP endpoint and the cloud controller
// the console fronts.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`

	// CLCHost is the cloud controller hostname. The admin console URL
	// and the token endpoint are both derived from it.
	CLCHost string `koanf:"clc_host"`

	// CLCPort is the cloud controller service port.
	CLCPort int `koanf:"clc_port"`

	// StaticPath is the directory holding the application shell.
	StaticPath string `koanf:"static_path"`
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr        string `koanf:"addr"`
	TLSCertFile string `koanf:"tls_cert_file"`
	TLSKeyFile  string `koanf:"tls_key_file"`
}

// LocaleSection configures the language and support links surfaced to
// the browser.
type LocaleSection struct {
	Language   string `koanf:"language"`
	HelpURL    string `koanf:"help_url"`
	SupportURL string `koanf:"support_url"`
}

// AuthSection configures the authentication delegate.
type AuthSection struct {
	// UseMock substitutes the fixed-credential stub for the real
	// authority. Selected once at startup.
	UseMock bool `koanf:"use_mock"`
}

// SessionSection configures session lifecycle policy.
type SessionSection struct {
	// AbsoluteTimeout is the idle timeout after which the reaper
	// terminates a session.
	AbsoluteTimeout time.Duration `koanf:"absolute_timeout"`

	// ReapInterval is how often the reaper sweeps for idle sessions.
	ReapInterval time.Duration `koanf:"reap_interval"`

	// RememberDuration is the lifetime of the account/username/remember
	// cookies set on "remember me" logins.
	RememberDuration time.Duration `koanf:"remember_duration"`

	// LoginRatePerMinute limits login attempts per client IP.
	// Zero disables the limiter.
	LoginRatePerMinute int `koanf:"login_rate_per_minute"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// AdminConsoleURL returns the URL of the admin console derived from
// the cloud controller host.
func (c *ServerConfig) AdminConsoleURL() string {
	return "https://" + c.Server.CLCHost + ":8443"
}
