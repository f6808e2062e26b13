package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPINAuthenticator(t *testing.T) {
	a, err := NewPINAuthenticator("4821")
	if err != nil {
		t.Fatalf("NewPINAuthenticator failed: %v", err)
	}
	ctx := context.Background()

	if err := a.Authenticate(ctx, "4821"); err != nil {
		t.Errorf("expected correct PIN to be accepted, got %v", err)
	}
	for _, pin := range []string{"", "1234", "48210"} {
		if err := a.Authenticate(ctx, pin); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q): expected ErrInvalidCredentials, got %v", pin, err)
		}
	}
}

func TestNewPINAuthenticator_WeakPIN(t *testing.T) {
	for _, pin := range []string{"", "1", "123"} {
		if _, err := NewPINAuthenticator(pin); !errors.Is(err, ErrWeakPIN) {
			t.Errorf("NewPINAuthenticator(%q): expected ErrWeakPIN, got %v", pin, err)
		}
	}
}

func TestJWTManager(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	token, expires, err := m.Generate(OperatorSubject)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expires) <= 59*time.Minute {
		t.Errorf("expected expiry about an hour ahead, got %v", expires)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != OperatorSubject {
		t.Errorf("subject: expected %s, got %s", OperatorSubject, claims.Subject)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m, _ := NewJWTManager("test-secret", time.Hour)
	other, _ := NewJWTManager("other-secret", time.Hour)
	expired, _ := NewJWTManager("test-secret", -time.Minute)

	foreign, _, _ := other.Generate(OperatorSubject)
	stale, _, _ := expired.Generate(OperatorSubject)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"other secret", foreign},
		{"expired", stale},
		{"unsigned", none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestJWTManager_RandomSecret(t *testing.T) {
	a, err := NewJWTManager("", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	b, _ := NewJWTManager("", time.Hour)

	token, _, _ := a.Generate(OperatorSubject)
	if _, err := a.Validate(token); err != nil {
		t.Errorf("expected token to validate with its own manager, got %v", err)
	}
	if _, err := b.Validate(token); err == nil {
		t.Error("expected token to be rejected by a manager with another random secret")
	}
}
