package http

import (
	"time"

	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/order"
)

// ErrorResponse is the uniform error body. Code is a stable machine-readable
// identifier; Message is for humans and may change.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	DeliveryAddressID string `json:"delivery_address_id"`
	TotalCents        int64  `json:"total_cents"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:orderId. All fields
// are optional; absent fields are left untouched.
type UpdateOrderRequest struct {
	Status          *string `json:"status,omitempty"`
	Deliverer       *string `json:"deliverer,omitempty"`
	DeliveryAddress *string `json:"delivery_address,omitempty"`
	Intent          *string `json:"intent,omitempty"`
}

// OrderResponse is one order in API responses.
type OrderResponse struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	DelivererID       *string   `json:"deliverer_id,omitempty"`
	DeliveryAddressID string    `json:"delivery_address_id"`
	Status            string    `json:"status"`
	StatusTitle       string    `json:"status_title"`
	TotalCents        int64     `json:"total_cents"`
	PlacedAt          time.Time `json:"placed_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HistoryResponse is one audit entry in API responses.
type HistoryResponse struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	Status      string    `json:"status"`
	PerformedBy *string   `json:"performed_by,omitempty"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
}

func orderResponseFromDomain(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:                o.ID().String(),
		CustomerID:        o.CustomerID().String(),
		DeliveryAddressID: o.DeliveryAddressID().String(),
		Status:            o.Status().String(),
		StatusTitle:       o.Status().Title(),
		TotalCents:        o.TotalCents(),
		PlacedAt:          o.PlacedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}
	if delivererID := o.Deliverer(); delivererID != nil {
		id := delivererID.String()
		resp.DelivererID = &id
	}
	return resp
}

func orderResponseFromQuery(row queries.GetOrdersQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:                row.ID.String(),
		CustomerID:        row.CustomerID.String(),
		DeliveryAddressID: row.DeliveryAddressID.String(),
		Status:            row.Status.String(),
		StatusTitle:       row.Status.Title(),
		TotalCents:        row.TotalCents,
		PlacedAt:          row.PlacedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	if row.DelivererID != nil {
		id := row.DelivererID.String()
		resp.DelivererID = &id
	}
	return resp
}

func historyResponseFromQuery(row queries.GetOrderHistoryQueryResponse) HistoryResponse {
	resp := HistoryResponse{
		ID:        row.ID.String(),
		OrderID:   row.OrderID.String(),
		Status:    row.Status.String(),
		Action:    row.Action,
		Timestamp: row.Timestamp,
	}
	if row.PerformedBy != nil {
		id := row.PerformedBy.String()
		resp.PerformedBy = &id
	}
	return resp
}
