package entity

import (
	"regexp"
	"strings"
)

// Overall email length bounds. The upper bound follows RFC 5321's path limit.
const (
	minEmailLength = 5
	maxEmailLength = 254
)

// emailPattern is an RFC-5322-like format check: permissive local part,
// domain as dot-separated labels of 1-63 alphanumeric-with-internal-hyphen
// characters.
var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
)

// DefaultJunkPatterns reject throwaway or obviously fake addresses before any
// persistence call is made.
var DefaultJunkPatterns = []string{
	`^test@`,
	`^admin@`,
	`^noreply@`,
	`@test\.`,
	`@example\.`,
	`@localhost`,
	`\.test$`,
	`^[a-z]+@[a-z]+$`, // bare "word@word" without a real domain
}

// EmailValidator validates subscriber email addresses. The junk-pattern list
// is injectable so tests can substitute their own list.
type EmailValidator struct {
	junkPatterns []*regexp.Regexp
}

// NewEmailValidator returns a validator using the built-in junk-pattern list.
func NewEmailValidator() *EmailValidator {
	return NewEmailValidatorWithPatterns(DefaultJunkPatterns)
}

// NewEmailValidatorWithPatterns returns a validator with a custom
// junk-pattern list. Patterns are matched case-insensitively; invalid
// expressions are skipped.
func NewEmailValidatorWithPatterns(exprs []string) *EmailValidator {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile(`(?i)` + e)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return &EmailValidator{junkPatterns: out}
}

// Validate runs the validation pipeline against an already-normalized email.
// Checks run in a fixed order and the first failure wins: format regex,
// junk patterns, domain structure, overall length.
// Returns a ValidationError describing the failed check.
func (v *EmailValidator) Validate(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}

	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "Invalid email format"}
	}

	for _, re := range v.junkPatterns {
		if re.MatchString(email) {
			return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
		}
	}

	// ドメインにドットが必須、TLDは2文字以上
	at := strings.LastIndex(email, "@")
	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	labels := strings.Split(domain, ".")
	if len(labels[len(labels)-1]) < 2 {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}

	return nil
}
