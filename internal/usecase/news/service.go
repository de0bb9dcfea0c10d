package news

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/infra/cache"
	"neuradigest/internal/observability/metrics"

	"golang.org/x/sync/errgroup"
)

const (
	defaultPerFeedTimeout = 10 * time.Second
	defaultMaxPerSource   = 5
	defaultMaxTotal       = 30
)

// FeedFetcher is an interface for fetching RSS/Atom feeds from a source.
type FeedFetcher interface {
	Fetch(ctx context.Context, source entity.FeedSource) ([]entity.NewsItem, error)
}

// Config controls which feeds are aggregated and how the digest is bounded.
type Config struct {
	// Sources are the feeds pulled on every aggregation.
	Sources []entity.FeedSource

	// Keywords select relevant items. An item is kept when its title,
	// snippet or full body contains at least one keyword,
	// case-insensitively. An empty list keeps everything.
	Keywords []string

	// PerFeedTimeout bounds a single feed fetch. Default 10s.
	PerFeedTimeout time.Duration

	// MaxPerSource caps items taken from one feed. Default 5.
	MaxPerSource int

	// MaxTotal caps the merged digest length. Default 30.
	MaxTotal int

	// CacheTTL is how long an aggregated digest stays fresh.
	CacheTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.PerFeedTimeout <= 0 {
		c.PerFeedTimeout = defaultPerFeedTimeout
	}
	if c.MaxPerSource <= 0 {
		c.MaxPerSource = defaultMaxPerSource
	}
	if c.MaxTotal <= 0 {
		c.MaxTotal = defaultMaxTotal
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = cache.DefaultTTL
	}
	return c
}

// Service aggregates configured feeds into a ranked digest.
// Individual feed failures are logged and skipped so one dead feed never
// takes down the whole digest.
type Service struct {
	Fetcher FeedFetcher
	Cache   cache.NewsCache
	cfg     Config

	keywords []string
}

// NewService creates a news Service with the provided dependencies.
// The cache may be nil, in which case every digest is aggregated fresh.
func NewService(fetcher FeedFetcher, newsCache cache.NewsCache, cfg Config) *Service {
	cfg = cfg.withDefaults()

	keywords := make([]string, 0, len(cfg.Keywords))
	for _, kw := range cfg.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	return &Service{
		Fetcher:  fetcher,
		Cache:    newsCache,
		cfg:      cfg,
		keywords: keywords,
	}
}

// Digest returns the current news digest, serving from cache when a fresh
// aggregation is available.
func (s *Service) Digest(ctx context.Context) ([]entity.NewsItem, error) {
	if s.Cache != nil {
		items, ok, err := s.Cache.Get(ctx)
		if err != nil {
			slog.Warn("digest cache read failed",
				slog.Any("error", err))
		} else if ok {
			metrics.RecordDigestServed("cache")
			return items, nil
		}
	}

	items, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordDigestServed("live")
	return items, nil
}

// Refresh aggregates all feeds now and replaces the cached digest.
func (s *Service) Refresh(ctx context.Context) ([]entity.NewsItem, error) {
	items, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, items, s.cfg.CacheTTL); err != nil {
			// キャッシュ失敗はダイジェスト自体を壊さない
			slog.Warn("digest cache write failed",
				slog.Any("error", err))
		}
	}
	return items, nil
}

// aggregate fetches every source in parallel and merges the results.
func (s *Service) aggregate(ctx context.Context) ([]entity.NewsItem, error) {
	if len(s.cfg.Sources) == 0 {
		return nil, ErrNoSources
	}

	start := time.Now()
	perSource := make([][]entity.NewsItem, len(s.cfg.Sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.cfg.Sources {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, s.cfg.PerFeedTimeout)
			defer cancel()

			items, err := s.Fetcher.Fetch(fetchCtx, src)
			if err != nil {
				// 1つのフィード失敗で全体を止めない
				slog.Warn("feed fetch failed, skipping source",
					slog.String("source", src.Name),
					slog.String("url", src.URL),
					slog.Any("error", err))
				metrics.RecordFeedFetchError(src.Name, classifyFetchError(err))
				return nil
			}

			kept := s.selectRelevant(items)
			perSource[i] = kept
			metrics.RecordFeedFetched(src.Name, len(items), len(kept))
			return nil
		})
	}
	// Workers never return errors, but Wait also handles ctx propagation.
	_ = g.Wait()

	merged := make([]entity.NewsItem, 0, s.cfg.MaxTotal)
	for _, items := range perSource {
		merged = append(merged, items...)
	}

	merged = rankDigest(merged, s.cfg.MaxTotal)

	slog.Info("news digest aggregated",
		slog.Int("sources", len(s.cfg.Sources)),
		slog.Int("items", len(merged)),
		slog.Duration("duration", time.Since(start)))
	return merged, nil
}

// selectRelevant filters items against the keyword list and caps the result
// per source. Filtering looks at the title, the snippet and the item body,
// so a keyword buried past the snippet cutoff still counts.
func (s *Service) selectRelevant(items []entity.NewsItem) []entity.NewsItem {
	kept := make([]entity.NewsItem, 0, s.cfg.MaxPerSource)
	for _, item := range items {
		// タイトルかリンクが欠けたアイテムは捨てる
		if item.Title == "" || item.Link == "" {
			continue
		}
		if !s.isRelevant(item) {
			continue
		}
		kept = append(kept, item)
		if len(kept) == s.cfg.MaxPerSource {
			break
		}
	}
	return kept
}

func (s *Service) isRelevant(item entity.NewsItem) bool {
	if len(s.keywords) == 0 {
		return true
	}

	haystack := strings.ToLower(item.Title + " " + item.Snippet + " " + item.Content)
	for _, kw := range s.keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// rankDigest sorts merged items newest first, drops duplicate stories and
// truncates to the digest limit. Duplicates are detected by normalized
// title so the same story syndicated across feeds appears once.
func rankDigest(items []entity.NewsItem, maxTotal int) []entity.NewsItem {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].PublishedAt.After(items[j].PublishedAt)
		}
		return items[i].Title < items[j].Title
	})

	seen := make(map[string]struct{}, len(items))
	out := make([]entity.NewsItem, 0, maxTotal)
	for _, item := range items {
		key := normalizeTitle(item.Title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, item)
		if len(out) == maxTotal {
			break
		}
	}
	return out
}

// normalizeTitle lowercases and trims a title for duplicate detection.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// classifyFetchError buckets fetch failures for metrics labels.
func classifyFetchError(err error) string {
	switch {
	case err == nil:
		return "none"
	case strings.Contains(err.Error(), "context deadline exceeded"):
		return "timeout"
	case strings.Contains(err.Error(), "circuit breaker"):
		return "circuit_open"
	default:
		return "fetch_error"
	}
}
