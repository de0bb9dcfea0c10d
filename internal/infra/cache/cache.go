// Package cache provides storage for aggregated news digests so repeated
// requests do not refetch every upstream feed.
package cache

import (
	"context"
	"time"

	"neuradigest/internal/domain/entity"
)

// DefaultTTL is how long a cached digest stays fresh.
const DefaultTTL = 24 * time.Hour

// NewsCache stores the most recent aggregated digest.
type NewsCache interface {
	// Get returns the cached digest. The second return value is false when
	// no fresh digest is available.
	Get(ctx context.Context) ([]entity.NewsItem, bool, error)

	// Set replaces the cached digest with the given items for the TTL.
	Set(ctx context.Context, items []entity.NewsItem, ttl time.Duration) error
}
