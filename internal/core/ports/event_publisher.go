package ports

import (
	"context"
	"time"

	"bookstore/internal/core/domain/model/order"
)

// OrderChangedEvent notifies downstream consumers (reporting, notifications)
// that an order committed a status transition. Published after the owning
// transaction commits; delivery is best-effort and never rolls the update back.
type OrderChangedEvent struct {
	OrderID   string       `json:"order_id"`
	Status    order.Status `json:"status"`
	Action    string       `json:"action"`
	ActorID   *string      `json:"actor_id,omitempty"`
	ChangedAt time.Time    `json:"changed_at"`
}

// OrderEventPublisher publishes order lifecycle events to the message bus.
type OrderEventPublisher interface {
	PublishOrderChanged(ctx context.Context, event OrderChangedEvent) error
}
