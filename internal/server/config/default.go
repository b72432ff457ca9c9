// Package config defines the console-gate server configuration.
package config

import (
	"time"

	"github.com/cloudward/console-gate/internal/core/domain"
)

// Default configuration values.
const (
	DefaultHTTPAddr   = "127.0.0.1:8888"
	DefaultCLCPort    = 8773
	DefaultStaticPath = "static"

	DefaultLanguage   = "en_US"
	DefaultHelpURL    = "https://docs.cloudward.io/console"
	DefaultSupportURL = "https://support.cloudward.io"

	DefaultAbsoluteTimeout  = 60 * time.Minute
	DefaultReapInterval     = time.Minute
	DefaultRememberDuration = 180 * 24 * time.Hour

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			CLCPort:    DefaultCLCPort,
			StaticPath: DefaultStaticPath,
		},
		Locale: LocaleSection{
			Language:   DefaultLanguage,
			HelpURL:    DefaultHelpURL,
			SupportURL: DefaultSupportURL,
		},
		Auth: AuthSection{
			UseMock: false,
		},
		Session: SessionSection{
			AbsoluteTimeout:  DefaultAbsoluteTimeout,
			ReapInterval:     DefaultReapInterval,
			RememberDuration: DefaultRememberDuration,
		},
		InstanceTypes: map[string]domain.InstanceProfile{
			"m1.small":  {CPU: 1, Memory: 128, Disk: 2},
			"c1.medium": {CPU: 2, Memory: 128, Disk: 5},
			"m1.large":  {CPU: 2, Memory: 512, Disk: 10},
			"m1.xlarge": {CPU: 2, Memory: 1024, Disk: 20},
			"c1.xlarge": {CPU: 4, Memory: 2048, Disk: 20},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
