// Package fetcher provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package fetcher

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/resilience/circuitbreaker"
	"neuradigest/internal/resilience/retry"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"
)

// RSSFetcher implements FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	userAgent      string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewRSSFetcher(client *http.Client, userAgent string) *RSSFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &RSSFetcher{
		client:         client,
		userAgent:      userAgent,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given source.
// It uses circuit breaker and retry logic for improved reliability.
// Returns a slice of NewsItem tagged with the source name and category.
func (f *RSSFetcher) Fetch(ctx context.Context, source entity.FeedSource) ([]entity.NewsItem, error) {
	var items []entity.NewsItem

	// Wrap with retry logic
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		// Execute through circuit breaker
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, source)
		})

		// Handle circuit breaker open state
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("service", "feed-fetch"),
					slog.String("url", source.URL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		items = cbResult.([]entity.NewsItem)
		return nil
	})

	if retryErr != nil {
		return nil, retryErr
	}

	return items, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, source entity.FeedSource) ([]entity.NewsItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = f.userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]entity.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		// 日付が解析できない場合は現在時刻を使用
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			pubAt = *it.UpdatedParsed
		}

		content := it.Content
		if content == "" {
			content = it.Description
		}

		items = append(items, entity.NewsItem{
			Title:       it.Title,
			Link:        it.Link,
			PublishedAt: pubAt,
			Snippet:     Snippet(content, SnippetMaxLen),
			Content:     content,
			ImageURL:    ExtractImage(it),
			Source:      source.Name,
			Category:    source.Category,
		})
	}

	return items, nil
}
