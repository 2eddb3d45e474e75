// Package errs provides standardized error types for the bookstore backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying the error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain-specific rejection kinds (invalid transitions, forbidden fields,
// ineligible intents) live next to the order model; this package covers the
// concerns that cut across layers, including the ConcurrentModification
// conflict surfaced by the persistence adapters.
package errs
