package order

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders pass validation.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the order-processing domain. It carries the
// owning customer, an optional deliverer, the delivery address reference, the
// lifecycle status, and the monetary total.
//
// Invariants:
//   - status is always a member of the known status set
//   - the total is fixed at creation; the transition engine never recomputes it
//   - status changes only through ChangeStatus, which enforces the transition
//     table and the acting role's authorization
//
// The version field is an optimistic-concurrency token maintained by the
// persistence adapter: a losing concurrent update surfaces a conflict instead
// of silently clobbering the winner.
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID

	// delivererID is nil until an employee assigns a deliverer.
	delivererID *kernel.UUID

	deliveryAddressID kernel.UUID
	status            Status

	// totalCents stores the monetary total in minor units.
	totalCents int64

	placedAt  time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// NewOrder creates a freshly placed order in pending status.
func NewOrder(id, customerID, deliveryAddressID kernel.UUID, totalCents int64, placedAt time.Time) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		placedAt:      placedAt,
		updatedAt:     placedAt,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDeliveryAddressID(deliveryAddressID),
		o.setTotalCents(totalCents),
	); err != nil {
		return nil, err
	}
	if placedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("placedAt")
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without replaying its
// lifecycle. The stored status must still be a member of the known set.
func RestoreOrder(
	id, customerID kernel.UUID,
	delivererID *kernel.UUID,
	deliveryAddressID kernel.UUID,
	status Status,
	totalCents int64,
	placedAt, updatedAt time.Time,
	version int64,
) (*Order, error) {
	o, err := NewOrder(id, customerID, deliveryAddressID, totalCents, placedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if delivererID != nil {
		if err = delivererID.Validate(); err != nil {
			return nil, err
		}
		dID := *delivererID
		o.delivererID = &dID
	}

	o.status = status
	o.updatedAt = updatedAt
	o.version = version
	return o, nil
}

// Validate ensures the Order was built through one of its constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning customer reference.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Deliverer returns the assigned deliverer's identity, or nil when none
// has been assigned yet.
func (o *Order) Deliverer() *kernel.UUID {
	return o.delivererID
}

// DeliveryAddressID returns the delivery address reference.
func (o *Order) DeliveryAddressID() kernel.UUID {
	return o.deliveryAddressID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TotalCents returns the monetary total in minor units.
func (o *Order) TotalCents() int64 {
	return o.totalCents
}

// PlacedAt returns the placement timestamp.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// UpdatedAt returns the last-update timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic-concurrency token.
func (o *Order) Version() int64 {
	return o.version
}

// AssignDeliverer sets the deliverer reference. Authorization was already
// enforced by the field guard; status side effects belong to the update
// pipeline, not here.
func (o *Order) AssignDeliverer(delivererID kernel.UUID) error {
	if err := delivererID.Validate(); err != nil {
		return err
	}
	o.delivererID = &delivererID
	return nil
}

// ChangeDeliveryAddress sets the delivery address reference. State eligibility
// (pending or failed only) is checked by the update pipeline before calling.
func (o *Order) ChangeDeliveryAddress(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}
	o.deliveryAddressID = addressID
	return nil
}

// ChangeStatus moves the order along a transition-table edge on behalf of the
// given role, refreshing the last-update timestamp. It rejects with
// InvalidTransitionError when no edge exists and TransitionForbiddenError
// when the role is not authorized for it. Proposing the current status is the
// caller's no-op to detect; reaching here with target == current is an error.
func (o *Order) ChangeStatus(target Status, role actor.Role, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == o.status {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("order is already %s", o.status))
	}

	if err := o.status.AuthorizeTransition(target, role); err != nil {
		return err
	}

	o.status = target
	o.updatedAt = now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setDeliveryAddressID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.deliveryAddressID = id
	return nil
}

func (o *Order) setTotalCents(totalCents int64) error {
	if totalCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total", fmt.Errorf("%d is negative", totalCents))
	}
	o.totalCents = totalCents
	return nil
}
