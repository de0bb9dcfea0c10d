package auth

import (
	"fmt"
	"os"
	"strings"
)

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
}

const (
	// minPasswordLength is the minimum required password length for admin credentials
	minPasswordLength = 12
)

// ValidateAdminCredentials validates admin credentials from environment variables
// at application startup. This function must be called before the server starts.
//
// Requirements:
//   - ADMIN_USER must not be empty
//   - ADMIN_USER_PASSWORD must not be empty
//   - Password must be at least 12 characters
//   - Password must not match any weak password patterns
//
// The error message is safe to log and does not leak the credential values.
func ValidateAdminCredentials() error {
	user := os.Getenv("ADMIN_USER")
	pass := os.Getenv("ADMIN_USER_PASSWORD")

	if user == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER must not be empty")
	}

	if pass == "" {
		return fmt.Errorf("admin credentials validation failed: ADMIN_USER_PASSWORD must not be empty")
	}

	if len(pass) < minPasswordLength {
		return fmt.Errorf("admin credentials validation failed: password must be at least %d characters", minPasswordLength)
	}

	lowerPass := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lowerPass == weak || strings.HasPrefix(lowerPass, weak) {
			return fmt.Errorf("admin credentials validation failed: password matches a known weak pattern")
		}
	}

	return nil
}

// WeakPasswords returns a copy of the weak password list for providers
// that enforce the same policy per request.
func WeakPasswords() []string {
	out := make([]string, len(weakPasswordList))
	copy(out, weakPasswordList)
	return out
}

// MinPasswordLength returns the minimum password length policy.
func MinPasswordLength() int {
	return minPasswordLength
}
