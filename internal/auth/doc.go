// Package auth is the boundary to the external credential authority.
//
// The Authenticator interface is the whole contract: one blocking call
// exchanging account/username/password for opaque session credentials.
// A mock implementation stands in for the authority when the
// auth.use_mock configuration flag is set, so tests and demos never
// touch the network. The implementation is chosen once at startup.
package auth
