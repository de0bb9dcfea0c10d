package notifier

import (
	"context"

	"neuradigest/internal/domain/entity"
)

// NoOpMailer is a no-operation implementation of the Mailer interface.
// It is used when outbound mail is disabled to avoid nil checks in the code.
type NoOpMailer struct{}

// NewNoOpMailer creates a new NoOpMailer instance.
func NewNoOpMailer() *NoOpMailer {
	return &NoOpMailer{}
}

// SendWelcome does nothing and returns nil immediately.
func (n *NoOpMailer) SendWelcome(ctx context.Context, sub *entity.Subscriber) error {
	return nil
}
