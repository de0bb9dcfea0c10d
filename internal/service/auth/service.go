// Package auth holds the framework-agnostic authentication core. HTTP
// specifics (JWT parsing, role matrix, middleware) live in the handler layer.
package auth

import (
	"context"
	"strings"
)

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// CredentialRequirements defines password policy requirements.
type CredentialRequirements struct {
	MinPasswordLength int
	WeakPasswords     []string
}

// AuthProvider validates credentials and maps accounts to roles.
type AuthProvider interface {
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role associated with an email address.
	IdentifyUser(ctx context.Context, email string) (string, error)

	GetRequirements() CredentialRequirements

	Name() string
}

// AuthService wraps the configured provider with the endpoint policy.
type AuthService struct {
	provider        AuthProvider
	publicEndpoints []string
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider, publicEndpoints []string) *AuthService {
	return &AuthService{
		provider:        provider,
		publicEndpoints: publicEndpoints,
	}
}

// ValidateCredentials validates user credentials via the configured provider.
func (s *AuthService) ValidateCredentials(ctx context.Context, creds Credentials) error {
	return s.provider.ValidateCredentials(ctx, creds)
}

// IsPublicEndpoint reports whether a path matches any configured public
// endpoint prefix.
func (s *AuthService) IsPublicEndpoint(path string) bool {
	for _, endpoint := range s.publicEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}
	return false
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
