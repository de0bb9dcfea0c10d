package notify

import "errors"

// Sentinel errors for notify use case operations.
var (
	// ErrChannelDisabled indicates that Send() was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidSubscriber indicates that the subscriber is nil or has no
	// email address to deliver to.
	ErrInvalidSubscriber = errors.New("invalid subscriber data")

	// ErrNotificationDropped indicates that a welcome email was dropped due
	// to worker pool saturation. Used for observability, not control flow.
	ErrNotificationDropped = errors.New("notification dropped due to pool saturation")
)
