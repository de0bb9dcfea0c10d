package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"neuradigest/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_MissWhenEmpty(t *testing.T) {
	c := NewMemoryCache()
	items, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, items)
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	stored := []entity.NewsItem{{Title: "A"}, {Title: "B"}}
	require.NoError(t, c.Set(ctx, stored, time.Minute))

	items, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stored, items)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []entity.NewsItem{{Title: "A"}}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []entity.NewsItem{{Title: "original"}}, time.Minute))

	items, ok, _ := c.Get(ctx)
	require.True(t, ok)
	items[0].Title = "mutated"

	again, _, _ := c.Get(ctx)
	assert.Equal(t, "original", again[0].Title)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, []entity.NewsItem{{Title: "X"}}, time.Minute)
		}()
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx)
		}()
	}
	wg.Wait()
}
