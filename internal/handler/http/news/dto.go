// Package news provides HTTP handlers for the aggregated news digest.
package news

import "time"

// DigestResponse is the envelope for GET /news. The news array is always
// present, even on errors, so the landing page can render without branching.
type DigestResponse struct {
	News  []ItemDTO `json:"news"`
	Error string    `json:"error,omitempty"`
}

// ItemDTO represents the JSON structure for one digest entry.
type ItemDTO struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"pubDate"`
	Snippet     string    `json:"contentSnippet"`
	ImageURL    string    `json:"image,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
}
