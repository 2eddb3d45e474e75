package queries

import (
	"context"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetReviewQueueQueryHandler reads the orders awaiting a review decision.
type GetReviewQueueQueryHandler struct {
	db *gorm.DB
}

// NewGetReviewQueueQueryHandler creates a handler for review queue queries.
func NewGetReviewQueueQueryHandler(db *gorm.DB) GetReviewQueueQueryHandler {
	return GetReviewQueueQueryHandler{db: db}
}

// Handle executes the queue read, oldest waiter first.
func (h GetReviewQueueQueryHandler) Handle(
	ctx context.Context,
	query GetReviewQueueQuery,
) ([]GetReviewQueueQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			updated_at
		FROM orders
		WHERE status = ?
		ORDER BY updated_at
	`, order.StatusUnderReview.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queue := make([]GetReviewQueueQueryResponse, 0)

	for rows.Next() {
		var resp GetReviewQueueQueryResponse
		var id, customerID uuid.UUID

		if err = rows.Scan(&id, &customerID, &resp.UpdatedAt); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}

		queue = append(queue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queue, nil
}
