package order

import (
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/actor"
)

// Sentinel errors for the rejection kinds of the update pipeline. Each has a
// struct type carrying details; errors.Is against the sentinel classifies,
// errors.As extracts the detail.
var (
	ErrFieldNotPermitted   = errors.New("fields are not permitted for role")
	ErrInvalidAddressState = errors.New("delivery address cannot be changed in current status")
	ErrIneligibleIntent    = errors.New("intent is not eligible in current status")
	ErrInvalidTransition   = errors.New("status transition is not defined")
	ErrTransitionForbidden = errors.New("status transition is forbidden for role")
)

// FieldNotPermittedError reports every change-set field the acting role may
// not touch. The update is rejected wholesale; no field is applied.
type FieldNotPermittedError struct {
	Role   actor.Role
	Fields []string
}

func (e *FieldNotPermittedError) Error() string {
	return fmt.Sprintf("%s: %s may not update: %s",
		ErrFieldNotPermitted, e.Role, strings.Join(e.Fields, ", "))
}

func (e *FieldNotPermittedError) Unwrap() error {
	return ErrFieldNotPermitted
}

// InvalidAddressStateError reports an address change attempted outside the
// pending and failed statuses.
type InvalidAddressStateError struct {
	Current Status
}

func (e *InvalidAddressStateError) Error() string {
	return fmt.Sprintf("%s (current status: %s)", ErrInvalidAddressState, e.Current.Title())
}

func (e *InvalidAddressStateError) Unwrap() error {
	return ErrInvalidAddressState
}

// IneligibleIntentError reports an intent requested while the order sits
// outside the intent's eligible origin statuses.
type IneligibleIntentError struct {
	Intent  Intent
	Current Status
}

func (e *IneligibleIntentError) Error() string {
	return fmt.Sprintf("cannot request %s at this stage (current status: %s)", e.Intent, e.Current.Title())
}

func (e *IneligibleIntentError) Unwrap() error {
	return ErrIneligibleIntent
}

// InvalidTransitionError reports a (from, to) pair with no edge in the
// transition table. No role can ever perform it.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s to %s", ErrInvalidTransition, e.From.Title(), e.To.Title())
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// TransitionForbiddenError reports an edge that exists in the table but whose
// authorized role set does not include the acting role.
type TransitionForbiddenError struct {
	From Status
	To   Status
	Role actor.Role
}

func (e *TransitionForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not move order from %s to %s",
		ErrTransitionForbidden, e.Role, e.From.Title(), e.To.Title())
}

func (e *TransitionForbiddenError) Unwrap() error {
	return ErrTransitionForbidden
}
