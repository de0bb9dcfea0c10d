// Package subscription provides use cases for managing newsletter
// subscriber state: validating addresses, applying subscribe and
// unsubscribe transitions against the row store, and triggering the
// welcome email.
package subscription

import "errors"

// Sentinel errors for subscription state transitions. The HTTP layer maps
// these onto 404/409 responses.
var (
	// ErrAlreadySubscribed indicates a subscribe attempt for an email whose
	// row is already in the subscribed state.
	ErrAlreadySubscribed = errors.New("email is already subscribed")

	// ErrAlreadyUnsubscribed indicates an unsubscribe attempt for an email
	// whose row is already in the unsubscribed state.
	ErrAlreadyUnsubscribed = errors.New("email is already unsubscribed")

	// ErrNotSubscribed indicates an unsubscribe attempt for an email with
	// no row in the store.
	ErrNotSubscribed = errors.New("email not found in subscription list")

	// ErrRowNotFound indicates a lookup for a sheet row that holds no
	// subscriber.
	ErrRowNotFound = errors.New("subscriber row not found")
)
