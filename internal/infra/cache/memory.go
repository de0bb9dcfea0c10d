package cache

import (
	"context"
	"sync"
	"time"

	"neuradigest/internal/domain/entity"
)

// MemoryCache is an in-process NewsCache. It is the default backend when no
// Redis address is configured and is safe for concurrent use.
type MemoryCache struct {
	mu        sync.RWMutex
	items     []entity.NewsItem
	expiresAt time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// Get returns the cached digest if it has not expired.
func (c *MemoryCache) Get(_ context.Context) ([]entity.NewsItem, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.items == nil || time.Now().After(c.expiresAt) {
		return nil, false, nil
	}

	// 呼び出し側の変更から守るためコピーを返す
	out := make([]entity.NewsItem, len(c.items))
	copy(out, c.items)
	return out, true, nil
}

// Set replaces the cached digest.
func (c *MemoryCache) Set(_ context.Context, items []entity.NewsItem, ttl time.Duration) error {
	stored := make([]entity.NewsItem, len(items))
	copy(stored, items)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = stored
	c.expiresAt = time.Now().Add(ttl)
	return nil
}
