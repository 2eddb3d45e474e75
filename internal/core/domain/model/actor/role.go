package actor

// Role classifies an actor for the order transition engine. Roles are derived
// per request from group membership and the superuser flag; they are never
// persisted.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleDelivery  Role = "delivery"
	RoleCustomer  Role = "customer"
	RoleAnonymous Role = "anonymous"
)

// employeeRoles lists the group-backed roles in resolution priority order.
// The order makes resolution total and deterministic: an actor who is both a
// manager and a deliverer resolves to manager.
var employeeRoles = []Role{RoleAdmin, RoleManager, RoleDelivery}

// HasRole reports whether the actor holds the given role. Admin maps to the
// superuser flag; manager and delivery map to group membership.
func HasRole(a Actor, role Role) bool {
	if role == RoleAdmin {
		return a.IsSuperuser()
	}
	return a.InGroup(string(role))
}

// ResolveRole maps an actor to exactly one role. Employee roles are checked in
// priority order admin, manager, delivery; any other authenticated actor is a
// customer, and unauthenticated sessions resolve to anonymous.
func ResolveRole(a Actor) Role {
	if !a.IsAuthenticated() {
		return RoleAnonymous
	}
	for _, role := range employeeRoles {
		if HasRole(a, role) {
			return role
		}
	}
	return RoleCustomer
}
