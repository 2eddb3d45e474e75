// Package http exposes the order API over echo. Handlers translate requests
// into commands and queries; all business decisions stay in the core.
package http

import (
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	placeOrderHandler  commands.PlaceOrderCommandHandler
	updateOrderHandler commands.UpdateOrderCommandHandler

	getOrdersHandler       queries.GetOrdersQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:      placeOrderHandler,
		updateOrderHandler:     updateOrderHandler,
		getOrdersHandler:       getOrdersHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
	}
}

// RegisterRoutes attaches the order API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo, middleware ...echo.MiddlewareFunc) {
	api := e.Group("/api/v1", middleware...)
	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.GetOrders)
	api.PATCH("/orders/:orderId", s.UpdateOrder)
	api.GET("/orders/:orderId/history", s.GetOrderHistory)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	deliveryAddressID, err := kernel.UUIDFromString(req.DeliveryAddressID)
	if err != nil {
		return writeBadRequest(ctx, "delivery_address_id must be a UUID")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, actorFromRequest(ctx), deliveryAddressID, req.TotalCents)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.placeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// UpdateOrder handles PATCH /api/v1/orders/:orderId. The body carries the
// change-set; which fields the caller may touch, and which status moves are
// legal, is decided by the transition engine.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "orderId must be a UUID")
	}

	var req UpdateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return writeBadRequest(ctx, "invalid request body")
	}

	changes, err := changeSetFromRequest(req)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, actorFromRequest(ctx), changes)
	if err != nil {
		return respondError(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponseFromDomain(updated))
}

// GetOrders handles GET /api/v1/orders, scoped to the acting actor's role.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := queries.NewGetOrdersQuery(actorFromRequest(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, row := range orders {
		response[i] = orderResponseFromQuery(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return writeBadRequest(ctx, "orderId must be a UUID")
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID, actorFromRequest(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]HistoryResponse, len(entries))
	for i, row := range entries {
		response[i] = historyResponseFromQuery(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

func changeSetFromRequest(req UpdateOrderRequest) (order.ChangeSet, error) {
	var changes order.ChangeSet

	if req.Status != nil {
		status, err := order.ParseStatus(*req.Status)
		if err != nil {
			return order.ChangeSet{}, err
		}
		changes.Status = &status
	}

	if req.Deliverer != nil {
		delivererID, err := kernel.UUIDFromString(*req.Deliverer)
		if err != nil {
			return order.ChangeSet{}, err
		}
		changes.Deliverer = &delivererID
	}

	if req.DeliveryAddress != nil {
		addressID, err := kernel.UUIDFromString(*req.DeliveryAddress)
		if err != nil {
			return order.ChangeSet{}, err
		}
		changes.DeliveryAddress = &addressID
	}

	if req.Intent != nil {
		intent, err := order.ParseIntent(*req.Intent)
		if err != nil {
			return order.ChangeSet{}, err
		}
		changes.Intent = &intent
	}

	return changes, nil
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: "bad_request", Message: message})
}
