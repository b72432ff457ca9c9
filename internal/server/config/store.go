// Package config defines the console-gate server configuration.
package config

import "sync/atomic"

// Store publishes the current configuration snapshot.
//
// The deployment metadata bundled into responses is recomputed from the
// current snapshot on every request, so a hot reload replaces the whole
// snapshot atomically and readers never observe a partially-applied
// configuration.
type Store struct {
	current atomic.Pointer[ServerConfig]
}

// NewStore creates a Store holding the given initial configuration.
func NewStore(cfg *ServerConfig) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Current returns the latest configuration snapshot. The returned
// value must be treated as read-only.
func (s *Store) Current() *ServerConfig {
	return s.current.Load()
}

// Replace swaps in a new configuration snapshot.
func (s *Store) Replace(cfg *ServerConfig) {
	s.current.Store(cfg)
}
