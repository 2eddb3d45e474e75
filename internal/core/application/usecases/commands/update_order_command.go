package commands

import (
	"errors"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand carries one proposed change-set for one order, together
// with the acting actor. The transition engine decides which parts of the
// change-set the actor's role may apply and whether the resulting status move
// is legal.
//
// Example:
//
//	shipped := order.StatusShipped
//	cmd, err := commands.NewUpdateOrderCommand(orderID, acting, order.ChangeSet{Status: &shipped})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type UpdateOrderCommand struct {
	orderID kernel.UUID
	acting  actor.Actor
	changes order.ChangeSet

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a command to update one order. Anonymous
// actors are rejected here; the engine only ever sees authenticated sessions.
// Values inside the change-set are assumed type-checked and referentially
// validated by the upstream request layer.
func NewUpdateOrderCommand(orderID kernel.UUID, acting actor.Actor, changes order.ChangeSet) (UpdateOrderCommand, error) {
	if !acting.IsAuthenticated() {
		return UpdateOrderCommand{}, ErrNotAuthenticated
	}
	if err := orderID.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}
	if s := changes.Status; s != nil {
		if err := s.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}
	if i := changes.Intent; i != nil {
		if err := i.Validate(); err != nil {
			return UpdateOrderCommand{}, err
		}
	}

	return UpdateOrderCommand{
		orderID: orderID,
		acting:  acting,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order the change-set targets.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Acting returns the acting actor's handle.
func (c UpdateOrderCommand) Acting() actor.Actor {
	return c.acting
}

// Changes returns the proposed change-set.
func (c UpdateOrderCommand) Changes() order.ChangeSet {
	return c.changes
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}
