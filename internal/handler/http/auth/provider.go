package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"

	authservice "neuradigest/internal/service/auth"
)

// BasicAuthProvider implements environment-based authentication.
// It compares credentials against ADMIN_USER / ADMIN_USER_PASSWORD.
type BasicAuthProvider struct {
	minPasswordLength int
	weakPasswords     []string
}

// NewBasicAuthProvider creates a new basic auth provider.
func NewBasicAuthProvider(minPasswordLength int, weakPasswords []string) *BasicAuthProvider {
	return &BasicAuthProvider{
		minPasswordLength: minPasswordLength,
		weakPasswords:     weakPasswords,
	}
}

// ValidateCredentials checks the password policy first, then compares against
// the admin account from the environment.
func (p *BasicAuthProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}
	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}
	for _, weak := range p.weakPasswords {
		if creds.Password == weak || strings.HasPrefix(creds.Password, weak) {
			return fmt.Errorf("weak password detected")
		}
	}

	// タイミング攻撃を避けるため定数時間比較を使う
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(os.Getenv("ADMIN_USER"))) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(os.Getenv("ADMIN_USER_PASSWORD"))) == 1
	if !userMatch || !passMatch {
		return fmt.Errorf("invalid credentials")
	}
	return nil
}

// IdentifyUser returns the role for a given email address. Only the configured
// admin account exists for this provider.
func (p *BasicAuthProvider) IdentifyUser(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("email must not be empty")
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(os.Getenv("ADMIN_USER"))) == 1 {
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("user not found")
}

// GetRequirements returns the password requirements.
func (p *BasicAuthProvider) GetRequirements() authservice.CredentialRequirements {
	return authservice.CredentialRequirements{
		MinPasswordLength: p.minPasswordLength,
		WeakPasswords:     p.weakPasswords,
	}
}

// Name returns the provider name.
func (p *BasicAuthProvider) Name() string { return "basic" }
