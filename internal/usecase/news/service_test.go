package news

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/infra/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves canned items per source name.
type fakeFetcher struct {
	mu      sync.Mutex
	items   map[string][]entity.NewsItem
	errs    map[string]error
	delays  map[string]time.Duration
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, source entity.FeedSource) ([]entity.NewsItem, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, source.Name)
	delay := f.delays[source.Name]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.errs[source.Name]; err != nil {
		return nil, err
	}
	return f.items[source.Name], nil
}

func at(hoursAgo int) time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC).Add(-time.Duration(hoursAgo) * time.Hour)
}

func newsItem(title string, hoursAgo int) entity.NewsItem {
	return entity.NewsItem{
		Title:       title,
		Link:        "https://example.com/" + title,
		PublishedAt: at(hoursAgo),
		Snippet:     "AI related story",
	}
}

func sources(names ...string) []entity.FeedSource {
	out := make([]entity.FeedSource, 0, len(names))
	for _, n := range names {
		out = append(out, entity.FeedSource{Name: n, URL: "https://feeds.example.com/" + n})
	}
	return out
}

func TestService_DigestMergesAndRanks(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"alpha": {newsItem("alpha story one", 1), newsItem("alpha story two", 5)},
			"beta":  {newsItem("beta story one", 3)},
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("alpha", "beta")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	// 新しい順
	assert.Equal(t, "alpha story one", items[0].Title)
	assert.Equal(t, "beta story one", items[1].Title)
	assert.Equal(t, "alpha story two", items[2].Title)
}

func TestService_CapsItemsPerSource(t *testing.T) {
	var many []entity.NewsItem
	for i := 0; i < 9; i++ {
		many = append(many, newsItem(fmt.Sprintf("big source story %d", i), i))
	}
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"big":   many,
			"small": {newsItem("small source story", 2)},
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("big", "small")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	// 7件ではなく 5+1 件
	assert.Len(t, items, 6)
}

func TestService_SkipsFailingSource(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"healthy": {newsItem("healthy story", 1)},
		},
		errs: map[string]error{
			"broken": errors.New("connection refused"),
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("healthy", "broken")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "healthy story", items[0].Title)
}

func TestService_SlowSourceTimesOut(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"fast": {newsItem("fast story", 1)},
			"slow": {newsItem("slow story", 2)},
		},
		delays: map[string]time.Duration{
			"slow": 500 * time.Millisecond,
		},
	}
	svc := NewService(fetcher, nil, Config{
		Sources:        sources("fast", "slow"),
		PerFeedTimeout: 30 * time.Millisecond,
	})

	start := time.Now()
	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	require.Len(t, items, 1)
	assert.Equal(t, "fast story", items[0].Title)
}

func TestService_DeduplicatesByNormalizedTitle(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"alpha": {newsItem("  Shared Headline ", 2)},
			"beta":  {newsItem("shared headline", 4), newsItem("unique beta story", 3)},
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("alpha", "beta")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	// 新しい方が残る
	assert.Equal(t, "  Shared Headline ", items[0].Title)
	assert.Equal(t, "unique beta story", items[1].Title)
}

func TestService_DistinctInnerWhitespaceIsNotADuplicate(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"alpha": {newsItem("Shared   Headline", 2)},
			"beta":  {newsItem("Shared Headline", 4)},
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("alpha", "beta")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	// 内側の空白が違えば別のタイトル
	assert.Len(t, items, 2)
}

func TestService_TruncatesDigest(t *testing.T) {
	items := map[string][]entity.NewsItem{}
	var names []string
	for s := 0; s < 8; s++ {
		name := fmt.Sprintf("src%d", s)
		names = append(names, name)
		for i := 0; i < 5; i++ {
			items[name] = append(items[name], newsItem(fmt.Sprintf("%s story %d", name, i), s+i))
		}
	}
	svc := NewService(&fakeFetcher{items: items}, nil, Config{Sources: sources(names...)})

	got, err := svc.Digest(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 30)
}

func TestService_KeywordFilter(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"mixed": {
				{Title: "New AI model ships", Link: "https://x/1", PublishedAt: at(1)},
				{Title: "Celebrity gossip roundup", Link: "https://x/2", PublishedAt: at(2), Snippet: "red carpet"},
				{Title: "Quiet title", Link: "https://x/3", PublishedAt: at(3), Snippet: "a robotics lab update"},
			},
		},
	}
	svc := NewService(fetcher, nil, Config{
		Sources:  sources("mixed"),
		Keywords: []string{"AI", "robotics"},
	})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "New AI model ships", items[0].Title)
	assert.Equal(t, "Quiet title", items[1].Title)
}

func TestService_KeywordFilterScansFullBody(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"longform": {
				{
					Title:       "Weekly industry roundup",
					Link:        "https://x/1",
					PublishedAt: at(1),
					Snippet:     "what happened this week",
					Content:     "A long report that only mentions robotics near the end.",
				},
				{Title: "Unrelated piece", Link: "https://x/2", PublishedAt: at(2), Content: "nothing of note"},
			},
		},
	}
	svc := NewService(fetcher, nil, Config{
		Sources:  sources("longform"),
		Keywords: []string{"robotics"},
	})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	// スニペットに無くても本文のキーワードで残す
	require.Len(t, items, 1)
	assert.Equal(t, "Weekly industry roundup", items[0].Title)
}

func TestService_DropsItemsWithoutTitleOrLink(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"sparse": {
				{Title: "", Link: "https://x/1", PublishedAt: at(1)},
				{Title: "no link story", Link: "", PublishedAt: at(2)},
				newsItem("complete story", 3),
			},
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("sparse")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "complete story", items[0].Title)
}

func TestService_ServesFromCache(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"alpha": {newsItem("live story", 1)},
		},
	}
	c := cache.NewMemoryCache()
	svc := NewService(fetcher, c, Config{Sources: sources("alpha")})

	first, err := svc.Digest(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	// 2回目はフェッチせずキャッシュから返る
	second, err := svc.Digest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, fetcher.fetched, 1)
}

func TestService_RefreshBypassesCache(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string][]entity.NewsItem{
			"alpha": {newsItem("warmed story", 1)},
		},
	}
	c := cache.NewMemoryCache()
	svc := NewService(fetcher, c, Config{Sources: sources("alpha")})

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, fetcher.fetched, 2)

	cached, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, cached, 1)
}

func TestService_NoSources(t *testing.T) {
	svc := NewService(&fakeFetcher{}, nil, Config{})
	_, err := svc.Digest(context.Background())
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestService_EmptyDigestIsNotAnError(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[string]error{
			"broken-a": errors.New("boom"),
			"broken-b": errors.New("boom"),
		},
	}
	svc := NewService(fetcher, nil, Config{Sources: sources("broken-a", "broken-b")})

	items, err := svc.Digest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}
