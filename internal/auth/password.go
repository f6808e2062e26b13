package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid PIN")
	ErrWeakPIN            = errors.New("PIN must be at least 4 characters")
)

// OperatorSubject is the token subject of the single cafeteria operator.
const OperatorSubject = "operator"

// Ensure PINAuthenticator implements Authenticator
var _ Authenticator = (*PINAuthenticator)(nil)

// PINAuthenticator accepts the one operator PIN configured at startup.
// Only the bcrypt hash is kept in memory.
type PINAuthenticator struct {
	hash []byte
}

// NewPINAuthenticator hashes pin and returns an authenticator for it.
func NewPINAuthenticator(pin string) (*PINAuthenticator, error) {
	if err := validatePIN(pin); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}
	return &PINAuthenticator{hash: hash}, nil
}

func validatePIN(pin string) error {
	if len(pin) < 4 {
		return ErrWeakPIN
	}
	return nil
}

// Authenticate compares credential with the configured PIN.
func (a *PINAuthenticator) Authenticate(ctx context.Context, credential string) error {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
