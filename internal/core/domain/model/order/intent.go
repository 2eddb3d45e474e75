package order

import (
	"fmt"

	"bookstore/internal/pkg/errs"
)

// Intent is a customer-declared desired outcome, distinct from a direct
// status edit. Each intent is eligible only from a fixed set of origin
// statuses; a granted intent always moves the order to under-review for an
// employee decision.
type Intent string

const (
	IntentCancellation Intent = "cancellation"
	IntentRefund       Intent = "refund"
)

// intentOrigins maps each intent to the statuses it may be requested from.
func intentOrigins() map[Intent][]Status {
	return map[Intent][]Status{
		IntentCancellation: {StatusPending, StatusFailed},
		IntentRefund:       {StatusDelivered},
	}
}

// ParseIntent converts a wire value to an Intent, rejecting unknown values.
func ParseIntent(value string) (Intent, error) {
	i := Intent(value)
	if err := i.Validate(); err != nil {
		return "", err
	}
	return i, nil
}

// Validate checks the intent is one of the known kinds.
func (i Intent) Validate() error {
	if _, ok := intentOrigins()[i]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("intent", fmt.Errorf("%q is not a valid intent", string(i)))
	}
	return nil
}

// EligibleFrom reports whether the intent may be requested while the order is
// in the given status.
func (i Intent) EligibleFrom(current Status) bool {
	for _, s := range intentOrigins()[i] {
		if s == current {
			return true
		}
	}
	return false
}

// String returns the wire value and implements fmt.Stringer.
func (i Intent) String() string {
	return string(i)
}
