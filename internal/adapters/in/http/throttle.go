package http

import (
	"fmt"
	"net/http"
	"time"

	"bookstore/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// ThrottleRates maps each role to its request budget per window. A zero rate
// means the role is not throttled.
type ThrottleRates map[actor.Role]int

// DefaultThrottleRates mirrors the per-role budgets of the public API:
// anonymous traffic is squeezed hardest, staff roles get headroom.
func DefaultThrottleRates() ThrottleRates {
	return ThrottleRates{
		actor.RoleAnonymous: 30,
		actor.RoleCustomer:  120,
		actor.RoleDelivery:  300,
		actor.RoleManager:   600,
		actor.RoleAdmin:     0,
	}
}

// RoleThrottle is a fixed-window rate limiter keyed by role and actor,
// counting in Redis so the budget holds across instances.
type RoleThrottle struct {
	client *redis.Client
	rates  ThrottleRates
	window time.Duration
}

// NewRoleThrottle creates a throttle over the given Redis client. The window
// is the budget period, typically one minute.
func NewRoleThrottle(client *redis.Client, rates ThrottleRates, window time.Duration) *RoleThrottle {
	return &RoleThrottle{
		client: client,
		rates:  rates,
		window: window,
	}
}

// Middleware returns an echo middleware enforcing the per-role budget.
// Anonymous requests share one bucket per window; authenticated actors get a
// bucket each. Redis outages fail open: availability beats throttling.
func (t *RoleThrottle) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			acting := actorFromRequest(ctx)
			role := actor.ResolveRole(acting)

			rate, ok := t.rates[role]
			if !ok || rate <= 0 {
				return next(ctx)
			}

			subject := "shared"
			if acting.IsAuthenticated() {
				subject = acting.ID().String()
			}

			reqCtx := ctx.Request().Context()
			window := time.Now().Unix() / int64(t.window.Seconds())
			key := fmt.Sprintf("throttle:%s:%s:%d", role, subject, window)

			count, err := t.client.Incr(reqCtx, key).Result()
			if err != nil {
				return next(ctx)
			}
			if count == 1 {
				t.client.Expire(reqCtx, key, t.window)
			}

			if count > int64(rate) {
				return ctx.JSON(http.StatusTooManyRequests, ErrorResponse{
					Code:    "throttled",
					Message: fmt.Sprintf("request budget exceeded for role %s", role),
				})
			}

			return next(ctx)
		}
	}
}
