package ports

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The stored version must
	// match the aggregate's loaded version; on mismatch the update is
	// rejected with errs.ErrConcurrentModification and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the remainder of
	// the surrounding transaction, serializing concurrent updates per order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
