package notify

import (
	"context"

	"neuradigest/internal/domain/entity"
	"neuradigest/internal/infra/notifier"
)

// EmailChannel implements the Channel interface for SMTP welcome email.
// It wraps a notifier.Mailer from the infrastructure layer so mail delivery
// integrates with the multi-channel dispatch machinery.
type EmailChannel struct {
	mailer  notifier.Mailer
	enabled bool
}

// NewEmailChannel creates an email channel around the given mailer.
// A nil mailer yields a disabled channel backed by a NoOpMailer.
func NewEmailChannel(mailer notifier.Mailer, enabled bool) *EmailChannel {
	if mailer == nil {
		mailer = notifier.NewNoOpMailer()
		enabled = false
	}
	return &EmailChannel{mailer: mailer, enabled: enabled}
}

// Name returns the channel identifier "email".
func (c *EmailChannel) Name() string {
	return "email"
}

// IsEnabled returns whether welcome email delivery is enabled.
func (c *EmailChannel) IsEnabled() bool {
	return c.enabled
}

// Send delivers the welcome email for the subscriber. Rate limiting and
// retries are handled by the underlying mailer.
func (c *EmailChannel) Send(ctx context.Context, sub *entity.Subscriber) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if sub == nil || sub.Email == "" {
		return ErrInvalidSubscriber
	}
	return c.mailer.SendWelcome(ctx, sub)
}
