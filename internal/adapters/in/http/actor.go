package http

import (
	"strings"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the API gateway after token verification. The
// service trusts them; it never sees raw credentials.
const (
	HeaderUserID        = "X-User-Id"
	HeaderUserGroups    = "X-User-Groups"
	HeaderUserSuperuser = "X-User-Superuser"
)

// actorFromRequest builds the acting actor from the gateway identity headers.
// A missing or malformed user ID yields the anonymous actor rather than an
// error: anonymity is a valid state and the guards downstream handle it.
func actorFromRequest(ctx echo.Context) actor.Actor {
	header := ctx.Request().Header

	rawID := strings.TrimSpace(header.Get(HeaderUserID))
	if rawID == "" {
		return actor.Anonymous()
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor.Anonymous()
	}

	var groups []string
	for _, g := range strings.Split(header.Get(HeaderUserGroups), ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}

	superuser := header.Get(HeaderUserSuperuser) == "true"

	acting, err := actor.NewActor(id, groups, superuser)
	if err != nil {
		return actor.Anonymous()
	}
	return acting
}
