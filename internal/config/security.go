package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SecurityPolicy holds the authentication policy loaded from YAML.
// Unlike AppConfig there are no baked-in defaults: a policy file must
// be explicit about every field so a typo cannot silently weaken it.
type SecurityPolicy struct {
	Auth struct {
		Provider          string   `yaml:"provider"`
		MinPasswordLength int      `yaml:"min_password_length"`
		WeakPasswords     []string `yaml:"weak_passwords"`
	} `yaml:"auth"`

	// PublicEndpoints are served without a bearer token.
	PublicEndpoints []string `yaml:"public_endpoints"`

	// TokenTTL caps how long an issued JWT stays valid.
	TokenTTL time.Duration `yaml:"-"`
}

// UnmarshalYAML decodes token_ttl from a human-readable string ("2h").
func (p *SecurityPolicy) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Auth struct {
			Provider          string   `yaml:"provider"`
			MinPasswordLength int      `yaml:"min_password_length"`
			WeakPasswords     []string `yaml:"weak_passwords"`
		} `yaml:"auth"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		TokenTTL        string   `yaml:"token_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	p.Auth = raw.Auth
	p.PublicEndpoints = raw.PublicEndpoints

	ttl, err := parseOptionalDuration(raw.TokenTTL)
	if err != nil {
		return fmt.Errorf("token_ttl: %w", err)
	}
	p.TokenTTL = ttl
	return nil
}

// LoadSecurityPolicy reads and validates a policy file.
func LoadSecurityPolicy(path string) (*SecurityPolicy, error) {
	// #nosec G304 -- パスはCLI引数か環境変数由来でリクエストからは来ない
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read security policy: %w", err)
	}

	var policy SecurityPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse security policy: %w", err)
	}

	if err := policy.validate(); err != nil {
		return nil, fmt.Errorf("security policy validation failed: %w", err)
	}
	return &policy, nil
}

func (p *SecurityPolicy) validate() error {
	if p.Auth.Provider == "" {
		return fmt.Errorf("auth provider is required")
	}
	if p.Auth.Provider == "basic" && p.Auth.MinPasswordLength < 8 {
		return fmt.Errorf("min_password_length must be at least 8")
	}
	if p.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	if p.TokenTTL > 24*time.Hour {
		return fmt.Errorf("token_ttl must not exceed 24h")
	}
	return nil
}
