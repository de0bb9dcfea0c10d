// Package news provides the use case for aggregating AI and technology
// headlines from configured RSS/Atom feeds into a single ranked digest.
package news

import "errors"

// Sentinel errors for news aggregation operations.
var (
	// ErrNoSources indicates that no feed sources are configured, so there
	// is nothing to aggregate.
	ErrNoSources = errors.New("no feed sources configured")
)
