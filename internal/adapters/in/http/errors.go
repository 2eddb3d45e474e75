package http

import (
	"errors"
	"net/http"

	"bookstore/internal/core/application/usecases/commands"
	"bookstore/internal/core/application/usecases/queries"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError translates domain rejections into HTTP responses. Rule
// violations are 400s with distinct codes; the transition-forbidden case is a
// 403 because the edge exists and only the actor's role is lacking.
func respondError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrNotAuthenticated) || errors.Is(err, queries.ErrNotAuthenticated):
		return writeError(ctx, http.StatusUnauthorized, "unauthenticated", err)
	case errors.Is(err, order.ErrFieldNotPermitted):
		return writeError(ctx, http.StatusBadRequest, "field_not_permitted", err)
	case errors.Is(err, order.ErrInvalidAddressState):
		return writeError(ctx, http.StatusBadRequest, "invalid_address_state", err)
	case errors.Is(err, order.ErrIneligibleIntent):
		return writeError(ctx, http.StatusBadRequest, "ineligible_intent", err)
	case errors.Is(err, order.ErrInvalidTransition):
		return writeError(ctx, http.StatusBadRequest, "invalid_transition", err)
	case errors.Is(err, order.ErrTransitionForbidden):
		return writeError(ctx, http.StatusForbidden, "transition_forbidden", err)
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, "not_found", err)
	case errors.Is(err, errs.ErrConcurrentModification):
		return writeError(ctx, http.StatusConflict, "concurrent_modification", err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return writeError(ctx, http.StatusBadRequest, "validation_error", err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "internal_error",
			Message: "internal server error",
		})
	}
}

func writeError(ctx echo.Context, status int, code string, err error) error {
	return ctx.JSON(status, ErrorResponse{Code: code, Message: err.Error()})
}
