// Package actor models the acting party of an order update: the opaque
// authenticated-actor handle and the role classification derived from it.
// Role resolution is a pure function of group memberships and the superuser
// flag, evaluated in a fixed priority order.
package actor
