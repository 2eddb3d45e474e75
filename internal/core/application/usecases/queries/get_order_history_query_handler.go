package queries

import (
	"context"
	"database/sql"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads one order's audit trail, enforcing the
// same visibility scope as the order listing: the join against orders keeps
// customers and deliverers inside their own slice of the data.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for audit trail queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the scoped trail read. Entries come back oldest-first so
// the trail reads chronologically. An order outside the actor's scope is
// indistinguishable from a missing one: both return ErrObjectNotFound.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	acting := query.Acting()
	orderID := query.OrderID().Bytes()

	var visible int64
	scoped := h.db.WithContext(ctx).Table("orders").Where("id = ?", orderID)
	switch actor.ResolveRole(acting) {
	case actor.RoleAdmin, actor.RoleManager:
	case actor.RoleDelivery:
		scoped = scoped.Where("deliverer_id = ?", acting.ID().Bytes())
	default:
		scoped = scoped.Where("customer_id = ?", acting.ID().Bytes())
	}
	if err := scoped.Count(&visible).Error; err != nil {
		return nil, err
	}
	if visible == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", query.OrderID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			status,
			performed_by,
			action,
			occurred_at
		FROM order_history
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetOrderHistoryQueryResponse, 0)

	for rows.Next() {
		entry, scanErr := scanHistoryRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func scanHistoryRow(rows *sql.Rows) (GetOrderHistoryQueryResponse, error) {
	var resp GetOrderHistoryQueryResponse
	var id, orderID uuid.UUID
	var performedBy uuid.NullUUID
	var status string

	err := rows.Scan(
		&id,
		&orderID,
		&status,
		&performedBy,
		&resp.Action,
		&resp.Timestamp,
	)
	if err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}
	if resp.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}
	if performedBy.Valid {
		pID, idErr := kernel.UUIDFromBytes(performedBy.UUID[:])
		if idErr != nil {
			return GetOrderHistoryQueryResponse{}, idErr
		}
		resp.PerformedBy = &pID
	}

	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrderHistoryQueryResponse{}, err
	}

	return resp, nil
}
