package commands

import (
	"context"
	"log/slog"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/core/domain/services"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"
)

// UpdateOrderCommandHandler runs the order transition engine for one request:
// it loads the order under a row lock, applies the change-set through the
// update pipeline, and commits the mutated order together with its audit
// entry. The lock plus the versioned update make the read-validate-write-
// append sequence atomic per order; a losing concurrent request surfaces
// errs.ErrConcurrentModification to its caller and is never retried here.
//
// Example:
//
//	handler := NewUpdateOrderCommandHandler(uowFactory, publisher, logger)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrTransitionForbidden):
//	    // the edge exists, but not for this actor
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // the edge does not exist for anyone
//	case err != nil:
//	    // other rejection or infrastructure failure
//	}
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	updater    services.OrderUpdater
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateOrderCommandHandler creates a handler for order updates.
// publisher may be nil when no message bus is configured; event publication
// is best-effort and never fails the update.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		updater:    services.NewOrderUpdater(),
		publisher:  publisher,
		logger:     logger.With("component", "update_order_handler"),
	}
}

// Handle processes the update command and returns the updated order.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, command UpdateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if !visibleTo(aggregate, command.Acting()) {
		return nil, errs.NewObjectNotFoundError("orderID", command.OrderID().String())
	}

	entry, err := h.updater.Update(aggregate, command.Acting(), command.Changes())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if entry != nil {
		if err = uow.HistoryRepository().Add(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if entry != nil {
		h.publishChanged(ctx, entry)
	}

	return aggregate, nil
}

// visibleTo mirrors the read-side scoping: customers reach only their own
// orders, deliverers only the orders assigned to them, admin and manager
// everything. Out-of-scope orders stay indistinguishable from missing ones.
func visibleTo(o *order.Order, acting actor.Actor) bool {
	switch actor.ResolveRole(acting) {
	case actor.RoleCustomer:
		return o.CustomerID().IsEqual(acting.ID())
	case actor.RoleDelivery:
		deliverer := o.Deliverer()
		return deliverer != nil && deliverer.IsEqual(acting.ID())
	default:
		return true
	}
}

// publishChanged notifies downstream consumers after the commit. Failures are
// logged; the committed update stands regardless.
func (h UpdateOrderCommandHandler) publishChanged(ctx context.Context, entry *order.History) {
	if h.publisher == nil {
		return
	}

	event := ports.OrderChangedEvent{
		OrderID:   entry.OrderID().String(),
		Status:    entry.Status(),
		Action:    entry.Action(),
		ChangedAt: entry.Timestamp(),
	}
	if performedBy := entry.PerformedBy(); performedBy != nil {
		id := performedBy.String()
		event.ActorID = &id
	}

	if err := h.publisher.PublishOrderChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish order changed event",
			"order_id", event.OrderID, "error", err)
	}
}
