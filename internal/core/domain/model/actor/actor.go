package actor

import (
	"strings"

	"bookstore/internal/core/domain/model/kernel"
)

// Actor is the opaque authenticated-actor handle the engine receives from the
// authentication collaborator. It exposes exactly what role resolution needs:
// group memberships and the superuser flag. An unauthenticated session is
// represented by Anonymous().
type Actor struct {
	id            kernel.UUID
	groups        []string
	superuser     bool
	authenticated bool
}

// NewActor creates the handle for an authenticated actor.
func NewActor(id kernel.UUID, groups []string, superuser bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:            id,
		groups:        append([]string(nil), groups...),
		superuser:     superuser,
		authenticated: true,
	}, nil
}

// Anonymous returns the handle for an unauthenticated session.
func Anonymous() Actor {
	return Actor{}
}

// ID returns the actor's identity. Only meaningful for authenticated actors.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// IsAuthenticated reports whether the actor carries an authenticated session.
func (a Actor) IsAuthenticated() bool {
	return a.authenticated
}

// InGroup reports case-insensitive membership in the named group.
func (a Actor) InGroup(name string) bool {
	for _, g := range a.groups {
		if strings.EqualFold(g, name) {
			return true
		}
	}
	return false
}

// IsSuperuser reports whether the actor carries the superuser flag.
func (a Actor) IsSuperuser() bool {
	return a.superuser
}
