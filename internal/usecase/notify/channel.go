// Package notify provides use cases for dispatching subscriber email across
// delivery channels. It implements the fan-out logic for welcome emails with
// circuit breakers, a bounded worker pool, and observability.
package notify

import (
	"context"

	"neuradigest/internal/domain/entity"
)

// Channel represents a welcome email delivery channel.
// Each channel implementation handles its own rate limiting, retries, and
// error handling, and must be safe for concurrent use.
type Channel interface {
	// Name returns the channel identifier used for logging, metrics, and
	// health check endpoints (lowercase, alphanumeric).
	Name() string

	// IsEnabled returns true if this channel is enabled via configuration.
	// Disabled channels are skipped during dispatching.
	IsEnabled() bool

	// Send delivers the welcome email for the subscriber through this
	// channel. Implementations must respect context cancellation and
	// return a non-nil error only after their own retries are exhausted.
	Send(ctx context.Context, sub *entity.Subscriber) error
}
