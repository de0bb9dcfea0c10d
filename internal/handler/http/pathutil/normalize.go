package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a concrete request path onto a normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns lists the dynamic routes, most specific first.
// Compiled once at init so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/subscribers/\d+$`), Template: "/subscribers/:row"},
}

// NormalizePath collapses dynamic URL paths so the request metrics keep a
// bounded label set. /subscribers/42 becomes /subscribers/:row; static paths
// such as /news, /subscribe and /health pass through unchanged, as does any
// path that matches no known pattern.
//
// Query parameters and trailing slashes are stripped first:
//
//	NormalizePath("/subscribers/42?page=1") // "/subscribers/:row"
//	NormalizePath("/subscribers/42/")       // "/subscribers/:row"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization, for alerting on label-set growth.
func GetExpectedCardinality() int {
	// templates plus the static endpoints (/news, /subscribe, /unsubscribe,
	// /subscribers, /auth/token, /health, /ready, /live, /metrics)
	return len(pathPatterns) + 9
}
