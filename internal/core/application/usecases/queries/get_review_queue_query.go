package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrGetReviewQueueQueryIsNotConstructed = errors.New(
	"GetReviewQueueQuery must be created via NewGetReviewQueueQuery constructor",
)

// GetReviewQueueQuery retrieves the orders sitting in under-review status.
// Used by the review reminder job to surface orders awaiting a manager
// decision; unscoped because only internal callers run it.
type GetReviewQueueQuery struct {
	guard guard.ConstructorGuard
}

// NewGetReviewQueueQuery creates a query for the review queue. This is a
// parameterless query.
func NewGetReviewQueueQuery() GetReviewQueueQuery {
	return GetReviewQueueQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetReviewQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetReviewQueueQueryIsNotConstructed)
}

// GetReviewQueueQueryResponse is one order awaiting review. UpdatedAt tells
// how long the order has been sitting in the queue.
type GetReviewQueueQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	UpdatedAt  time.Time
}
