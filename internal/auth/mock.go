// Package auth is the boundary to the external credential authority.
package auth

import "context"

// Mock placeholder credentials. Deliberately bogus values so they are
// never mistaken for credentials issued by a real authority.
const (
	MockSessionToken = "Larry"
	MockAccessKey    = "Moe"
	MockSecretKey    = "Curly"
)

// Mock is an Authenticator that accepts any credentials and returns
// fixed placeholders without contacting any external service.
type Mock struct{}

// NewMock creates the mock authenticator.
func NewMock() *Mock {
	return &Mock{}
}

// Authenticate always succeeds with the placeholder credentials.
func (m *Mock) Authenticate(_ context.Context, _, _, _ string) (Credentials, error) {
	return Credentials{
		SessionToken: MockSessionToken,
		AccessKey:    MockAccessKey,
		SecretKey:    MockSecretKey,
	}, nil
}
