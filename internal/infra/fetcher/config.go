package fetcher

import (
	"net/http"
	"time"

	"neuradigest/pkg/config"
)

// DefaultUserAgent identifies the aggregator to upstream feed servers.
const DefaultUserAgent = "NeuraDigestBot"

const defaultTimeout = 10 * time.Second

// Config holds the configuration for feed fetching operations.
type Config struct {
	// UserAgent is sent with every feed request.
	UserAgent string

	// Timeout is the maximum duration for a single feed request,
	// applied to the underlying HTTP client.
	Timeout time.Duration
}

// LoadConfigFromEnv loads fetcher configuration from environment variables.
// If a variable is not set or invalid, the default value is used.
//
// Environment variables:
//   - FEED_FETCH_USER_AGENT: user agent string (default: NeuraDigestBot)
//   - FEED_FETCH_TIMEOUT: duration string, e.g., "10s" (default: 10s,
//     accepted range 1s-2m)
func LoadConfigFromEnv() Config {
	timeout := config.GetEnvDuration("FEED_FETCH_TIMEOUT", defaultTimeout)
	if err := config.ValidateDurationRange(timeout, time.Second, 2*time.Minute); err != nil {
		timeout = defaultTimeout
	}
	return Config{
		UserAgent: config.GetEnvString("FEED_FETCH_USER_AGENT", DefaultUserAgent),
		Timeout:   timeout,
	}
}

// NewHTTPClient builds an HTTP client for feed fetching from the config.
func (c Config) NewHTTPClient() *http.Client {
	return &http.Client{Timeout: c.Timeout}
}
