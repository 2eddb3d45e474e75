package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand creates a new order for a customer. The order starts in
// pending status and receives an "Order created" audit entry. The total is
// computed upstream (cart checkout) and is immutable from here on.
type PlaceOrderCommand struct {
	orderID           kernel.UUID
	customer          actor.Actor
	deliveryAddressID kernel.UUID
	totalCents        int64

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order. The customer must
// be authenticated and the address reference already validated upstream.
func NewPlaceOrderCommand(orderID kernel.UUID, customer actor.Actor, deliveryAddressID kernel.UUID, totalCents int64) (PlaceOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PlaceOrderCommand{}, err
	}
	if err := deliveryAddressID.Validate(); err != nil {
		return PlaceOrderCommand{}, err
	}

	return PlaceOrderCommand{
		orderID:           orderID,
		customer:          customer,
		deliveryAddressID: deliveryAddressID,
		totalCents:        totalCents,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identity the new order will carry.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the placing customer's handle.
func (c PlaceOrderCommand) Customer() actor.Actor {
	return c.customer
}

// DeliveryAddressID returns the chosen delivery address reference.
func (c PlaceOrderCommand) DeliveryAddressID() kernel.UUID {
	return c.deliveryAddressID
}

// TotalCents returns the order total in minor units.
func (c PlaceOrderCommand) TotalCents() int64 {
	return c.totalCents
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}
