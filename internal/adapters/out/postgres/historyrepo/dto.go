// Package historyrepo provides persistence for order audit entries. The log
// is append-only: the repository exposes Add and nothing else; reads go
// through the query handlers.
package historyrepo

import (
	"time"

	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryDTO represents the database structure for persisting audit entries.
// PerformedBy is null for entries recorded without an authenticated actor.
type HistoryDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(32)"`
	PerformedBy *uuid.UUID `gorm:"type:uuid"`
	Action      string     `gorm:"type:text"`
	OccurredAt  time.Time  `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *order.History) HistoryDTO {
	var performedBy *uuid.UUID
	if id := entry.PerformedBy(); id != nil {
		raw := id.Bytes()
		performedBy = &raw
	}

	return HistoryDTO{
		ID:          entry.ID().Bytes(),
		OrderID:     entry.OrderID().Bytes(),
		Status:      entry.Status().String(),
		PerformedBy: performedBy,
		Action:      entry.Action(),
		OccurredAt:  entry.Timestamp(),
	}
}
