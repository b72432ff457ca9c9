// Package memory provides the in-memory session store for console-gate.
package memory

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cloudward/console-gate/internal/core/domain"
	"github.com/cloudward/console-gate/pkg/token"
)

// SessionIDBytes is the entropy of a session identifier in bytes.
// 16 bytes hex-encode to the 32-character ids handed to browsers.
const SessionIDBytes = 16

// TerminateReason says why a session was removed from the store.
type TerminateReason int

const (
	// ReasonLogout is an explicit logout requested by the browser.
	ReasonLogout TerminateReason = iota

	// ReasonExpired is an idle-timeout termination by the reaper.
	ReasonExpired
)

// String returns the log wording for the reason.
func (r TerminateReason) String() string {
	if r == ReasonExpired {
		return "session timed out"
	}
	return "logged out"
}

// Store maps session identifiers to session entities.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session

	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty session store.
func New(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[string]*domain.Session),
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create generates an unguessable session identifier, inserts a new
// session entity for the principal and returns the identifier. The
// generate-check-insert sequence runs under the lock, so concurrent
// creates can never emit duplicate identifiers; generation retries on
// the (vanishingly unlikely) collision with a live id.
func (s *Store) Create(account, username, sessionToken, accessKey, secretKey string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sid string
	for {
		id, err := token.GenerateHex(SessionIDBytes)
		if err != nil {
			return "", domain.ErrInternal.WithCause(err)
		}
		if _, exists := s.sessions[id]; exists {
			continue
		}
		sid = id
		break
	}

	sess := domain.NewSession(account, username, sessionToken, accessKey, secretKey)
	now := s.now()
	sess.CreatedAt = now
	sess.LastUsedAt = now
	s.sessions[sid] = sess

	return sid, nil
}

// Lookup returns the session for the given identifier. It is a pure
// read; nothing is mutated and the returned entity is a copy. A miss
// yields ErrSessionNotFound, which callers treat as a normal outcome
// rather than a failure.
func (s *Store) Lookup(sid string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Touch updates the last-use timestamp and request counter of a
// session. It is a no-op when the identifier is unknown.
func (s *Store) Touch(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sid]; ok {
		sess.Touch(s.now())
	}
}

// SetFullName records the principal's resolved full name. The field is
// set once; later calls with a different value are ignored.
func (s *Store) SetFullName(sid, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[sid]; ok && sess.FullName == "" {
		sess.FullName = name
	}
}

// Terminate removes the session and logs its duration and request
// count. It reports whether an entry was actually removed; an unknown
// identifier is a no-op, which makes logout idempotent.
func (s *Store) Terminate(sid string, reason TerminateReason) bool {
	s.mu.Lock()
	sess, ok := s.sessions[sid]
	if ok {
		delete(s.sessions, sid)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}

	now := s.now()
	s.logger.Info("user "+reason.String(),
		"account", sess.Account,
		"username", sess.Username,
		"duration_seconds", int64(sess.Age(now).Seconds()),
		"requests_served", sess.RequestCount,
	)
	return true
}

// ReapIdle terminates every session idle for longer than the given
// timeout and returns how many were removed.
func (s *Store) ReapIdle(idleTimeout time.Duration) int {
	now := s.now()

	s.mu.RLock()
	var idle []string
	for sid, sess := range s.sessions {
		if sess.IdleFor(now) > idleTimeout {
			idle = append(idle, sid)
		}
	}
	s.mu.RUnlock()

	// A session touched between the scan and the terminate is spared
	// on the next sweep; re-check under the write lock.
	reaped := 0
	for _, sid := range idle {
		s.mu.Lock()
		sess, ok := s.sessions[sid]
		if ok && sess.IdleFor(now) > idleTimeout {
			delete(s.sessions, sid)
		} else {
			ok = false
		}
		s.mu.Unlock()

		if ok {
			s.logger.Info("user "+ReasonExpired.String(),
				"account", sess.Account,
				"username", sess.Username,
				"duration_seconds", int64(sess.Age(now).Seconds()),
				"requests_served", sess.RequestCount,
			)
			reaped++
		}
	}
	return reaped
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
