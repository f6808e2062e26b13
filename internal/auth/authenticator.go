package auth

import "context"

// Authenticator verifies the credential an operator presents at login.
// Implementations decide what the credential is; the HTTP layer only hands
// it over and issues a session token on success.
type Authenticator interface {
	// Authenticate returns nil when credential is accepted and
	// ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, credential string) error
}
