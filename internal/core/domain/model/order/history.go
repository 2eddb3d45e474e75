package order

import (
	"errors"
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// ErrHistoryIsNotConstructed is returned when a History instance was not
// created through the NewHistory factory method.
var ErrHistoryIsNotConstructed = errors.New("History must be created via NewHistory constructor")

// History is an append-only audit entry recording that an order transitioned
// to a status (or that a customer intent was granted). Entries are created
// only as a side effect of a successful transition and are never mutated or
// deleted; the engine never reads them back.
type History struct {
	id      kernel.UUID
	orderID kernel.UUID

	// status is the status the order transitioned to.
	status Status

	// performedBy is nil when the acting actor has since been deleted
	// (or when the entry was produced by the system).
	performedBy *kernel.UUID

	action    string
	timestamp time.Time

	isConstructed bool
}

// NewHistory creates an audit entry for the given order and target status.
// The action is a free-text description, e.g. "Status transitioned to
// Shipped" or "Customer requested cancellation. Status transitioned to
// Under Review.".
func NewHistory(id, orderID kernel.UUID, status Status, performedBy *kernel.UUID, action string, at time.Time) (*History, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("timestamp")
	}

	return &History{
		id:            id,
		orderID:       orderID,
		status:        status,
		performedBy:   performedBy,
		action:        action,
		timestamp:     at,
		isConstructed: true,
	}, nil
}

// RestoreHistory reconstructs an audit entry from persistence.
func RestoreHistory(id, orderID kernel.UUID, status Status, performedBy *kernel.UUID, action string, at time.Time) (*History, error) {
	return NewHistory(id, orderID, status, performedBy, action, at)
}

// Validate ensures the entry was built through NewHistory.
func (h *History) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (h *History) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the entry belongs to.
func (h *History) OrderID() kernel.UUID {
	return h.orderID
}

// Status returns the status the order transitioned to.
func (h *History) Status() Status {
	return h.status
}

// PerformedBy returns the acting actor's identity, or nil.
func (h *History) PerformedBy() *kernel.UUID {
	return h.performedBy
}

// Action returns the free-text action description.
func (h *History) Action() string {
	return h.action
}

// Timestamp returns when the entry was recorded.
func (h *History) Timestamp() time.Time {
	return h.timestamp
}
