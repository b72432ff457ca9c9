// Package service provides the domain services for console-gate.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudward/console-gate/internal/auth"
	"github.com/cloudward/console-gate/internal/core/domain"
	"github.com/cloudward/console-gate/internal/storage/memory"
	"github.com/cloudward/console-gate/internal/telemetry/metric"
)

// SessionService owns the session lifecycle: it authenticates
// principals through the delegate, creates and terminates store
// entries, and runs the idle reaper.
type SessionService struct {
	store         *memory.Store
	authenticator auth.Authenticator
	metrics       *metric.Metrics
	logger        *slog.Logger

	idleTimeout  time.Duration
	reapInterval time.Duration
}

// SessionConfig parameterizes the session lifecycle.
type SessionConfig struct {
	// IdleTimeout is how long a session may go unused before the
	// reaper terminates it.
	IdleTimeout time.Duration

	// ReapInterval is the sweep period of the reaper.
	ReapInterval time.Duration
}

// NewSessionService creates a session service.
func NewSessionService(store *memory.Store, authenticator auth.Authenticator, metrics *metric.Metrics, logger *slog.Logger, cfg SessionConfig) *SessionService {
	return &SessionService{
		store:         store,
		authenticator: authenticator,
		metrics:       metrics,
		logger:        logger,
		idleTimeout:   cfg.IdleTimeout,
		reapInterval:  cfg.ReapInterval,
	}
}

// Login verifies the credentials with the delegate and, on success,
// creates a store entry. The delegate call may block on network IO;
// no store lock is held while it runs. The returned session is the
// freshly created entity.
func (s *SessionService) Login(ctx context.Context, account, username, password string) (string, *domain.Session, error) {
	creds, err := s.authenticator.Authenticate(ctx, account, username, password)
	if err != nil {
		s.logger.Info("authentication rejected", "account", account, "username", username)
		return "", nil, domain.ErrNotAuthorized.WithCause(err)
	}

	sid, err := s.store.Create(account, username, creds.SessionToken, creds.AccessKey, creds.SecretKey)
	if err != nil {
		return "", nil, err
	}

	s.metrics.LoginsTotal.Inc()
	s.metrics.SessionsActive.Set(float64(s.store.Len()))
	s.logger.Info("session created", "account", account, "username", username)

	sess, err := s.store.Lookup(sid)
	if err != nil {
		// Terminated between create and lookup; treat as a failed login.
		return "", nil, domain.ErrNotAuthorized.WithCause(err)
	}
	return sid, sess, nil
}

// Logout terminates the session. Unknown identifiers are a no-op, so
// a repeated logout succeeds the same way the first one did. Only a
// real termination counts as a logout in the metrics.
func (s *SessionService) Logout(sid string) {
	if s.store.Terminate(sid, memory.ReasonLogout) {
		s.metrics.LogoutsTotal.Inc()
		s.metrics.SessionsActive.Set(float64(s.store.Len()))
	}
}

// Resolve returns the session for an identifier. An identifier with
// no live entry yields ErrSessionNotFound.
func (s *SessionService) Resolve(sid string) (*domain.Session, error) {
	return s.store.Lookup(sid)
}

// Touch marks the session as used.
func (s *SessionService) Touch(sid string) {
	s.store.Touch(sid)
}

// RunReaper sweeps for idle sessions until the context is cancelled.
// Sessions idle for longer than the configured timeout are terminated
// with the expiry reason.
func (s *SessionService) RunReaper(ctx context.Context) {
	ticker := time.NewTicker(s.reapInterval)
	defer ticker.Stop()

	s.logger.Info("session reaper started",
		"idle_timeout", s.idleTimeout.String(),
		"interval", s.reapInterval.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session reaper stopped")
			return
		case <-ticker.C:
			if n := s.store.ReapIdle(s.idleTimeout); n > 0 {
				s.metrics.SessionsExpired.Add(float64(n))
				s.metrics.SessionsActive.Set(float64(s.store.Len()))
				s.logger.Info("reaped idle sessions", "count", n)
			}
		}
	}
}
