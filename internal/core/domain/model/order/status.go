package order

import (
	"fmt"

	"bookstore/internal/core/domain/model/actor"
	"bookstore/internal/pkg/errs"
)

// Status is the lifecycle state of an order, identified by a stable slug.
// The set is closed; orders can only move along the edges of the transition
// table below.
//
// State diagram (roles authorized per edge are in the table):
//
//	pending ──> shipped ──> delivered ──> under-review
//	   │  │                                  │  │  │
//	   │  └──> failed <───────────────────── ─┘  │  └──> refunded
//	   └─────> under-review ──> shipped          └─────> cancelled
//
// Cancelled and refunded are terminal; no edges leave them.
type Status string

const (
	StatusPending     Status = "pending"
	StatusShipped     Status = "shipped"
	StatusDelivered   Status = "delivered"
	StatusUnderReview Status = "under-review"
	StatusCancelled   Status = "cancelled"
	StatusRefunded    Status = "refunded"
	StatusFailed      Status = "failed"
)

// statusTitles maps each slug to its human-readable label.
func statusTitles() map[Status]string {
	return map[Status]string{
		StatusPending:     "Pending",
		StatusShipped:     "Shipped",
		StatusDelivered:   "Delivered",
		StatusUnderReview: "Under Review",
		StatusCancelled:   "Cancelled",
		StatusRefunded:    "Refunded",
		StatusFailed:      "Failed",
	}
}

// transitions is the static policy mapping (current, target) to the set of
// roles authorized to perform that edge. Kept as one data structure so tests
// can enumerate every edge exhaustively.
func transitions() map[Status]map[Status][]actor.Role {
	return map[Status]map[Status][]actor.Role{
		StatusPending: {
			StatusShipped:     {actor.RoleAdmin, actor.RoleManager},
			StatusUnderReview: {actor.RoleAdmin, actor.RoleManager, actor.RoleCustomer},
			StatusFailed:      {actor.RoleAdmin, actor.RoleManager},
		},
		StatusShipped: {
			StatusDelivered:   {actor.RoleAdmin, actor.RoleDelivery},
			StatusUnderReview: {actor.RoleAdmin, actor.RoleManager, actor.RoleDelivery},
		},
		StatusDelivered: {
			StatusUnderReview: {actor.RoleAdmin, actor.RoleManager, actor.RoleCustomer},
		},
		StatusUnderReview: {
			StatusShipped:   {actor.RoleAdmin, actor.RoleManager},
			StatusCancelled: {actor.RoleAdmin, actor.RoleManager},
			StatusRefunded:  {actor.RoleAdmin, actor.RoleManager},
			StatusFailed:    {actor.RoleAdmin, actor.RoleManager},
		},
		StatusFailed: {
			StatusUnderReview: {actor.RoleAdmin, actor.RoleManager, actor.RoleCustomer},
		},
	}
}

// AllStatuses returns every valid status, for validation and tests.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusShipped,
		StatusDelivered,
		StatusUnderReview,
		StatusCancelled,
		StatusRefunded,
		StatusFailed,
	}
}

// ParseStatus converts a slug to a Status, rejecting anything outside the
// closed set.
func ParseStatus(slug string) (Status, error) {
	s := Status(slug)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// Validate checks the status is a member of the known status set.
func (s Status) Validate() error {
	if _, ok := statusTitles()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status slug", string(s)))
	}
	return nil
}

// Title returns the human-readable label, e.g. "Under Review" for
// "under-review". Unknown slugs render as "Unknown".
func (s Status) Title() string {
	if title, ok := statusTitles()[s]; ok {
		return title
	}
	return "Unknown"
}

// String returns the stable slug and implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// AllowedRoles looks up the role set for the (s, target) edge.
// The second return value is false when the edge does not exist.
func (s Status) AllowedRoles(target Status) ([]actor.Role, bool) {
	targets, ok := transitions()[s]
	if !ok {
		return nil, false
	}
	roles, ok := targets[target]
	return roles, ok
}

// AuthorizeTransition checks the (s, target) edge for the given role.
//
// It distinguishes two rejection kinds so callers can tell "impossible" from
// "forbidden for you":
//   - InvalidTransitionError when no edge from s to target exists
//   - TransitionForbiddenError when the edge exists but the role is not in
//     its authorized set
func (s Status) AuthorizeTransition(target Status, role actor.Role) error {
	roles, ok := s.AllowedRoles(target)
	if !ok {
		return &InvalidTransitionError{From: s, To: target}
	}

	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return &TransitionForbiddenError{From: s, To: target, Role: role}
}
