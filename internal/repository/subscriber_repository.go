// Package repository defines persistence interfaces for the domain layer.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"neuradigest/internal/domain/entity"
)

// SubscriberRow pairs a subscriber with its 1-based row number in the backing
// sheet. The row number is needed to update a row in place.
type SubscriberRow struct {
	Row        int
	Subscriber entity.Subscriber
}

// SubscriberRepository abstracts the row-oriented subscriber store.
// Lookups use the normalized (trimmed, lower-cased) email as the key.
type SubscriberRepository interface {
	// FindByEmail returns the row for the given normalized email, or nil if
	// no such row exists. A store whose expected range is missing entirely is
	// treated as empty, not as an error.
	FindByEmail(ctx context.Context, email string) (*SubscriberRow, error)

	// Append adds a new subscriber row at the end of the sheet.
	Append(ctx context.Context, sub *entity.Subscriber) error

	// Update rewrites the name, timestamp and status cells of an existing row
	// in place, identified by its 1-based row number.
	Update(ctx context.Context, row int, sub *entity.Subscriber) error

	// List returns all subscriber rows in sheet order.
	List(ctx context.Context) ([]SubscriberRow, error)
}
