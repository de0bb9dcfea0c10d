// Package notifier provides abstraction for sending subscriber emails.
// It defines the Mailer interface which allows different delivery mechanisms
// (SMTP, a provider API, a no-op) to be used interchangeably through
// dependency injection.
package notifier

import (
	"context"

	"neuradigest/internal/domain/entity"
)

// Mailer is an interface for sending transactional subscriber email.
// Implementations should handle rate limiting, retries, and error logging internally.
type Mailer interface {
	// SendWelcome delivers the welcome email to a newly subscribed address.
	//
	// Implementations should:
	//   - Apply rate limiting to stay within provider sending limits
	//   - Retry transient failures with exponential backoff
	//   - Respect context cancellation
	SendWelcome(ctx context.Context, sub *entity.Subscriber) error
}
