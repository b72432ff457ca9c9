// Package domain defines the core domain models for console-gate.
package domain

import "time"

// Session is the server-side record of one authenticated principal.
//
// The identity fields (Account, Username, SessionToken, AccessKey,
// SecretKey) are fixed at creation. SessionToken, AccessKey and
// SecretKey are opaque credentials issued by the authentication
// authority; they are held server-side and must never reach the
// browser. PublicView is the only projection that leaves the process.
type Session struct {
	Account      string
	Username     string
	SessionToken string
	AccessKey    string
	SecretKey    string

	// FullName is resolved lazily, once known.
	FullName string

	CreatedAt    time.Time
	LastUsedAt   time.Time
	RequestCount int64
}

// NewSession creates a session record for the given principal with
// both timestamps set to now.
func NewSession(account, username, sessionToken, accessKey, secretKey string) *Session {
	now := time.Now()
	return &Session{
		Account:      account,
		Username:     username,
		SessionToken: sessionToken,
		AccessKey:    accessKey,
		SecretKey:    secretKey,
		CreatedAt:    now,
		LastUsedAt:   now,
	}
}

// PublicSession is the browser-facing view of a session.
type PublicSession struct {
	Account  string `json:"account"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
}

// PublicView projects the session onto the subset of fields that may
// be sent to browsers.
func (s *Session) PublicView() PublicSession {
	return PublicSession{
		Account:  s.Account,
		Username: s.Username,
		FullName: s.FullName,
	}
}

// Touch updates the last-use timestamp and bumps the request counter.
func (s *Session) Touch(now time.Time) {
	s.LastUsedAt = now
	s.RequestCount++
}

// IdleFor reports how long the session has been idle as of now.
func (s *Session) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastUsedAt)
}

// Age reports the total session lifetime as of now.
func (s *Session) Age(now time.Time) time.Duration {
	return now.Sub(s.CreatedAt)
}

// Clone creates a copy of the session.
func (s *Session) Clone() *Session {
	clone := *s
	return &clone
}
