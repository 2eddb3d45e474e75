package services

import (
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
)

// OrderUpdater is the domain service orchestrating a single order update.
// It runs the guards and handlers in a fixed sequence, early-terminating on
// the first rejection:
//
//  1. field authorization over the change-set
//  2. deliverer assignment (may propose a shipped override)
//  3. delivery-address change (may propose an under-review override)
//  4. intent resolution (may propose an under-review override)
//  5. transition-table commit
//
// Each handler is a pipeline stage returning an optional status override;
// a later stage's override supersedes an earlier one and any explicit status
// in the change-set. The updater mutates the order in memory only; the
// caller owns persistence and its atomicity.
//
// Example:
//
//	updater := services.NewOrderUpdater()
//	entry, err := updater.Update(o, acting, changes)
//	if err != nil {
//	    // typed rejection, nothing was persisted
//	    return err
//	}
//	// persist o; append entry when non-nil
type OrderUpdater struct {
	clock func() time.Time
}

// NewOrderUpdater creates an updater using the wall clock.
func NewOrderUpdater() OrderUpdater {
	return OrderUpdater{clock: time.Now}
}

// NewOrderUpdaterWithClock creates an updater with an injected clock.
func NewOrderUpdaterWithClock(clock func() time.Time) OrderUpdater {
	return OrderUpdater{clock: clock}
}

// Update applies the change-set to the order on behalf of the acting actor.
//
// Returns the audit History entry produced by a committed transition or a
// granted intent, or nil when the update was a status no-op (non-status
// fields may still have been modified). On error the order must be discarded
// unpersisted: stages mutate it before later stages can reject.
func (u OrderUpdater) Update(o *order.Order, acting actor.Actor, changes order.ChangeSet) (*order.History, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	role := actor.ResolveRole(acting)
	if err := order.AuthorizeFields(role, changes); err != nil {
		return nil, err
	}

	// The explicit status proposal, if any. Stage overrides replace it.
	target := changes.Status
	auditNote := ""

	override, err := u.applyDeliverer(o, changes.Deliverer)
	if err != nil {
		return nil, err
	}
	if override != nil {
		target = override
	}

	override, err = u.applyDeliveryAddress(o, changes.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	if override != nil {
		target = override
	}

	override, auditNote, err = u.applyIntent(o, changes.Intent)
	if err != nil {
		return nil, err
	}
	if override != nil {
		target = override
	}

	return u.commitTransition(o, role, acting, target, auditNote)
}

// applyDeliverer assigns a proposed deliverer that differs from the current
// one. Assignment while the order is pending or under-review implies
// shipment, so those states propose a shipped override. Only admin and
// manager reach this stage; the field guard already enforced that.
func (u OrderUpdater) applyDeliverer(o *order.Order, proposed *kernel.UUID) (*order.Status, error) {
	if proposed == nil {
		return nil, nil
	}
	if current := o.Deliverer(); current != nil && current.IsEqual(*proposed) {
		return nil, nil
	}

	if err := o.AssignDeliverer(*proposed); err != nil {
		return nil, err
	}

	if o.Status() == order.StatusPending || o.Status() == order.StatusUnderReview {
		shipped := order.StatusShipped
		return &shipped, nil
	}
	return nil, nil
}

// applyDeliveryAddress changes the delivery address, permitted only while the
// order is pending or failed. A correction after failure must be reviewed
// before re-shipping, so the failed state proposes an under-review override.
func (u OrderUpdater) applyDeliveryAddress(o *order.Order, proposed *kernel.UUID) (*order.Status, error) {
	if proposed == nil || o.DeliveryAddressID().IsEqual(*proposed) {
		return nil, nil
	}

	current := o.Status()
	if current != order.StatusPending && current != order.StatusFailed {
		return nil, &order.InvalidAddressStateError{Current: current}
	}

	if err := o.ChangeDeliveryAddress(*proposed); err != nil {
		return nil, err
	}

	if current == order.StatusFailed {
		underReview := order.StatusUnderReview
		return &underReview, nil
	}
	return nil, nil
}

// applyIntent grants a customer intent when the order sits in one of the
// intent's eligible origin statuses, proposing an under-review override and
// an audit note that distinguishes the intent from a plain status edit.
func (u OrderUpdater) applyIntent(o *order.Order, intent *order.Intent) (*order.Status, string, error) {
	if intent == nil {
		return nil, "", nil
	}

	if !intent.EligibleFrom(o.Status()) {
		return nil, "", &order.IneligibleIntentError{Intent: *intent, Current: o.Status()}
	}

	underReview := order.StatusUnderReview
	note := fmt.Sprintf("Customer requested %s. Status transitioned to %s.", *intent, underReview.Title())
	return &underReview, note, nil
}

// commitTransition performs the final transition-table commit. No proposed
// target, or a target equal to the current status, is a no-op: no audit
// entry, no timestamp refresh.
func (u OrderUpdater) commitTransition(
	o *order.Order,
	role actor.Role,
	acting actor.Actor,
	target *order.Status,
	auditNote string,
) (*order.History, error) {
	if target == nil || *target == o.Status() {
		return nil, nil
	}

	now := u.clock()
	if err := o.ChangeStatus(*target, role, now); err != nil {
		return nil, err
	}

	if auditNote == "" {
		auditNote = "Status transitioned to " + target.Title()
	}

	var performedBy *kernel.UUID
	if acting.IsAuthenticated() {
		id := acting.ID()
		performedBy = &id
	}

	return order.NewHistory(kernel.NewUUID(), o.ID(), *target, performedBy, auditNote, now)
}
