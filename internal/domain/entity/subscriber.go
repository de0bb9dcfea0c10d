package entity

import (
	"strings"
	"time"
)

// Subscription status values as stored in the sheet's status column.
const (
	StatusSubscribed   = "subscribed"
	StatusUnsubscribed = "unsubscribed"
)

// Subscriber represents one durable subscription row.
// The normalized email is the unique key: at most one row exists per email,
// and unsubscribing toggles Status instead of deleting the row.
type Subscriber struct {
	Name         string
	Email        string
	SubscribedAt time.Time
	Status       string
}

// IsSubscribed reports whether the row currently holds an active subscription.
// An empty status column (rows written before the status column existed)
// counts as subscribed.
func (s *Subscriber) IsSubscribed() bool {
	return strings.ToLower(s.Status) != StatusUnsubscribed
}

// NormalizeEmail trims surrounding whitespace and lower-cases an email address.
// All lookups and persisted rows use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FirstName returns the first whitespace-separated token of the subscriber's
// name, or "there" when the name is empty. Used for greeting templates.
func (s *Subscriber) FirstName() string {
	fields := strings.Fields(s.Name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
