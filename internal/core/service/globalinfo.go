// Package service provides the domain services for console-gate.
package service

import (
	"github.com/cloudward/console-gate/internal/core/domain"
	"github.com/cloudward/console-gate/internal/infra/buildinfo"
	"github.com/cloudward/console-gate/internal/server/config"
)

// GlobalInfoService derives the read-only deployment metadata from the
// current configuration snapshot. It holds no state of its own, so a
// configuration reload is visible on the very next request.
type GlobalInfoService struct {
	configs *config.Store
}

// NewGlobalInfoService creates the provider over the given config store.
func NewGlobalInfoService(configs *config.Store) *GlobalInfoService {
	return &GlobalInfoService{configs: configs}
}

// GlobalInfo builds the metadata bundle for login and session responses.
func (g *GlobalInfoService) GlobalInfo() domain.GlobalInfo {
	cfg := g.configs.Current()

	types := make(map[string]domain.InstanceProfile, len(cfg.InstanceTypes))
	for name, profile := range cfg.InstanceTypes {
		types[name] = profile
	}

	return domain.GlobalInfo{
		Version:         buildinfo.Version,
		Language:        cfg.Locale.Language,
		AdminConsoleURL: cfg.AdminConsoleURL(),
		HelpURL:         cfg.Locale.HelpURL,
		AdminSupportURL: cfg.Locale.SupportURL,
		InstanceTypes:   types,
	}
}

// LocaleInfo returns the language and support URL for the init action.
func (g *GlobalInfoService) LocaleInfo() (language, supportURL string) {
	cfg := g.configs.Current()
	return cfg.Locale.Language, cfg.Locale.SupportURL
}
