// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as NewsItem, FeedSource and
// Subscriber, along with their validation rules and domain-specific errors.
package entity

import "time"

// FeedSource represents a configured external RSS/Atom endpoint.
// Sources are static: they are defined at process start and never mutated.
type FeedSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// NewsItem represents a single normalized news entry derived from a feed.
// Items are request-scoped and never persisted.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"pubDate"`
	Snippet     string    `json:"contentSnippet"`
	Content     string    `json:"content,omitempty"`
	ImageURL    string    `json:"image,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
}
