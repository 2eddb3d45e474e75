package ports

import (
	"context"

	"bookstore/internal/core/domain/model/order"
)

// HistoryRepository defines the persistence contract for order audit entries.
// The log is append-only: entries are never updated or deleted, and the
// transition engine never reads them back. Reporting reads go through the
// query handlers instead.
type HistoryRepository interface {
	// Add appends an immutable history entry.
	Add(ctx context.Context, entry *order.History) error
}
