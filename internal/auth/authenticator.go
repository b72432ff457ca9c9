// Package auth is the boundary to the external credential authority.
package auth

import (
	"context"

	"github.com/cloudward/console-gate/internal/core/domain"
)

// Credentials are the opaque values issued by the authority on a
// successful authentication. They are held server-side only.
type Credentials struct {
	SessionToken string
	AccessKey    string
	SecretKey    string
}

// Authenticator verifies a principal's password with the credential
// authority. Implementations block for the duration of the exchange
// and define their own retry policy, if any.
type Authenticator interface {
	Authenticate(ctx context.Context, account, username, password string) (Credentials, error)
}

// ErrRejected is returned when the authority refuses the credentials.
var ErrRejected = domain.NewDomainError("CG-AUTH-4013", "authentication rejected")
