package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
//
// Justification for each public endpoint:
// - /health, /ready, /live: required for orchestration health checks
// - /metrics: required for Prometheus scraping
// - /news: the digest is rendered on the public landing page
// - /subscribe, /unsubscribe: the signup form posts here without a session
// - /auth/token: token generation endpoint (can't require a token to get one)
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/news",
	"/subscribe",
	"/unsubscribe",
	"/auth/token",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Matching logic:
// - Endpoints ending with '/' use prefix matching
// - Endpoints without '/' require an exact match, a trailing slash, or
//   query params only (so /health matches /health?x=1 but not /healthcheck)
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint {
			return true
		}
		if path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
