package queries

import (
	"context"
	"database/sql"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler reads the order listing for an actor, applying the
// role-based visibility scope in SQL.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the scoped listing. Results are sorted newest-first by
// placement time so recent activity leads the page.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseQuery = `
		SELECT
			id,
			customer_id,
			deliverer_id,
			delivery_address_id,
			status,
			total_cents,
			placed_at,
			updated_at
		FROM orders
	`

	acting := query.Acting()
	var rows *sql.Rows
	var err error

	switch actor.ResolveRole(acting) {
	case actor.RoleAdmin, actor.RoleManager:
		rows, err = h.db.WithContext(ctx).Raw(baseQuery + " ORDER BY placed_at DESC").Rows()
	case actor.RoleDelivery:
		rows, err = h.db.WithContext(ctx).
			Raw(baseQuery+" WHERE deliverer_id = ? ORDER BY placed_at DESC", acting.ID().Bytes()).
			Rows()
	default:
		rows, err = h.db.WithContext(ctx).
			Raw(baseQuery+" WHERE customer_id = ? ORDER BY placed_at DESC", acting.ID().Bytes()).
			Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)

	for rows.Next() {
		row, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		orders = append(orders, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func scanOrderRow(rows *sql.Rows) (GetOrdersQueryResponse, error) {
	var resp GetOrdersQueryResponse
	var id, customerID, deliveryAddressID uuid.UUID
	var delivererID uuid.NullUUID
	var status string

	err := rows.Scan(
		&id,
		&customerID,
		&delivererID,
		&deliveryAddressID,
		&status,
		&resp.TotalCents,
		&resp.PlacedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		return GetOrdersQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrdersQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrdersQueryResponse{}, err
	}
	if resp.DeliveryAddressID, err = kernel.UUIDFromBytes(deliveryAddressID[:]); err != nil {
		return GetOrdersQueryResponse{}, err
	}
	if delivererID.Valid {
		dID, idErr := kernel.UUIDFromBytes(delivererID.UUID[:])
		if idErr != nil {
			return GetOrdersQueryResponse{}, idErr
		}
		resp.DelivererID = &dID
	}

	if resp.Status, err = order.ParseStatus(status); err != nil {
		return GetOrdersQueryResponse{}, err
	}

	return resp, nil
}
