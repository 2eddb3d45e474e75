// Package services contains domain services that coordinate behavior across
// the order aggregate and its value objects. OrderUpdater is the status
// transition engine: it composes the field guard, the deliverer and address
// handlers, the intent resolver, and the transition-table commit into one
// fixed pipeline.
package services
