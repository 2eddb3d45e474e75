// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as its string slug; Version backs the optimistic lock on
// updates.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index"`
	DelivererID       *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryAddressID uuid.UUID  `gorm:"type:uuid"`
	Status            string     `gorm:"type:varchar(32);index"`
	TotalCents        int64
	PlacedAt          time.Time
	UpdatedAt         time.Time
	Version           int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation. The version is carried over unchanged; the repository
// decides when to advance it.
func fromDomain(aggregate *order.Order) OrderDTO {
	var delivererID *uuid.UUID
	if id := aggregate.Deliverer(); id != nil {
		raw := id.Bytes()
		delivererID = &raw
	}

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		DelivererID:       delivererID,
		DeliveryAddressID: aggregate.DeliveryAddressID().Bytes(),
		Status:            aggregate.Status().String(),
		TotalCents:        aggregate.TotalCents(),
		PlacedAt:          aggregate.PlacedAt(),
		UpdatedAt:         aggregate.UpdatedAt(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var delivererID *kernel.UUID
	if dto.DelivererID != nil {
		dID, delivererErr := kernel.UUIDFromBytes((*dto.DelivererID)[:])
		if delivererErr != nil {
			return nil, delivererErr
		}

		delivererID = &dID
	}

	deliveryAddressID, err := kernel.UUIDFromBytes(dto.DeliveryAddressID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		customerID,
		delivererID,
		deliveryAddressID,
		status,
		dto.TotalCents,
		dto.PlacedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
