package commands

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// ErrNotAuthenticated is returned when an operation requires an
// authenticated actor but received an anonymous session.
var ErrNotAuthenticated = errors.New("actor is not authenticated")

// PlaceOrderCommandHandler creates a pending order together with its initial
// audit entry, in one transaction.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      time.Now,
	}
}

// Handle processes the order placement command.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, command PlaceOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	customer := command.Customer()
	if !customer.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	now := h.clock()
	newOrder, err := order.NewOrder(
		command.OrderID(),
		customer.ID(),
		command.DeliveryAddressID(),
		command.TotalCents(),
		now,
	)
	if err != nil {
		return err
	}

	customerID := customer.ID()
	entry, err := order.NewHistory(
		kernel.NewUUID(), newOrder.ID(), newOrder.Status(), &customerID, "Order created", now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.HistoryRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
