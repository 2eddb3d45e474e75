package order

import (
	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/core/domain/model/kernel"
)

// Field names as they appear in update requests and in rejection messages.
const (
	FieldStatus          = "status"
	FieldDeliverer       = "deliverer"
	FieldDeliveryAddress = "delivery_address"
	FieldIntent          = "intent"
)

// ChangeSet is the set of fields one update request proposes to modify.
// Values are already type-checked and referentially validated upstream; a nil
// pointer means the field is absent from the request. Intent rides along as
// its own field rather than hiding inside a generic map, so the field guard
// and the intent stage each see exactly what they need.
type ChangeSet struct {
	Status          *Status
	Deliverer       *kernel.UUID
	DeliveryAddress *kernel.UUID
	Intent          *Intent
}

// FieldNames lists the fields present in the change-set, in declaration order.
func (c ChangeSet) FieldNames() []string {
	names := make([]string, 0, 4)
	if c.Status != nil {
		names = append(names, FieldStatus)
	}
	if c.Deliverer != nil {
		names = append(names, FieldDeliverer)
	}
	if c.DeliveryAddress != nil {
		names = append(names, FieldDeliveryAddress)
	}
	if c.Intent != nil {
		names = append(names, FieldIntent)
	}
	return names
}

// IsEmpty reports whether the change-set proposes nothing.
func (c ChangeSet) IsEmpty() bool {
	return c.Status == nil && c.Deliverer == nil && c.DeliveryAddress == nil && c.Intent == nil
}

// allowedFields defines which order attributes each role may attempt to
// modify in a single update. Anonymous has no entry: every field offends.
func allowedFields() map[actor.Role]map[string]bool {
	return map[actor.Role]map[string]bool{
		actor.RoleAdmin:    {FieldStatus: true, FieldDeliverer: true},
		actor.RoleManager:  {FieldStatus: true, FieldDeliverer: true},
		actor.RoleDelivery: {FieldStatus: true},
		actor.RoleCustomer: {FieldDeliveryAddress: true, FieldIntent: true},
	}
}

// AuthorizeFields checks every field in the change-set against the role's
// allowed set. Any offending field rejects the whole update with a
// FieldNotPermittedError naming all of them. The check is unconditional and
// independent of the order's current state.
func AuthorizeFields(role actor.Role, c ChangeSet) error {
	allowed := allowedFields()[role]

	var offending []string
	for _, name := range c.FieldNames() {
		if !allowed[name] {
			offending = append(offending, name)
		}
	}

	if len(offending) > 0 {
		return &FieldNotPermittedError{Role: role, Fields: offending}
	}
	return nil
}
