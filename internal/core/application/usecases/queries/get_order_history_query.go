package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery retrieves the audit trail of one order. The same
// role-based visibility scope as the order listing applies: an actor can only
// read the history of an order they could list.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID
	acting  actor.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for one order's audit trail.
func NewGetOrderHistoryQuery(orderID kernel.UUID, acting actor.Actor) (GetOrderHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	if !acting.IsAuthenticated() {
		return GetOrderHistoryQuery{}, ErrNotAuthenticated
	}

	return GetOrderHistoryQuery{
		orderID: orderID,
		acting:  acting,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose trail is requested.
func (q GetOrderHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Acting returns the actor the result set is scoped to.
func (q GetOrderHistoryQuery) Acting() actor.Actor {
	return q.acting
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// GetOrderHistoryQueryResponse is one audit entry in the trail.
type GetOrderHistoryQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Status      order.Status
	PerformedBy *kernel.UUID
	Action      string
	Timestamp   time.Time
}
