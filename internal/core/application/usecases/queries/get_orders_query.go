// Package queries contains read operations in the CQRS split. Query handlers
// read persisted state directly with raw SQL, bypassing aggregates and
// repositories; they never modify anything.
package queries

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)

	// ErrNotAuthenticated is returned when a read requires an authenticated
	// actor but received an anonymous session.
	ErrNotAuthenticated = errors.New("actor is not authenticated")
)

// GetOrdersQuery retrieves the orders visible to the acting actor. Visibility
// follows the actor's resolved role: admins and managers see every order,
// deliverers see the orders assigned to them, customers see their own.
//
// Example:
//
//	query, err := queries.NewGetOrdersQuery(acting)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct {
	acting actor.Actor

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query scoped to the acting actor. Anonymous
// sessions see no orders and are rejected here.
func NewGetOrdersQuery(acting actor.Actor) (GetOrdersQuery, error) {
	if !acting.IsAuthenticated() {
		return GetOrdersQuery{}, ErrNotAuthenticated
	}

	return GetOrdersQuery{
		acting: acting,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Acting returns the actor the result set is scoped to.
func (q GetOrdersQuery) Acting() actor.Actor {
	return q.acting
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// GetOrdersQueryResponse is one order row in the listing.
type GetOrdersQueryResponse struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	DelivererID       *kernel.UUID
	DeliveryAddressID kernel.UUID
	Status            order.Status
	TotalCents        int64
	PlacedAt          time.Time
	UpdatedAt         time.Time
}
