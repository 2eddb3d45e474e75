// Package order contains the order aggregate and the building blocks of the
// status transition engine: the closed status set with its transition table,
// customer intents and their eligibility rules, the change-set with per-role
// field authorization, the append-only history entry, and the typed rejection
// kinds the update pipeline surfaces.
//
// The transition table and role sets are explicit data structures rather than
// scattered conditionals, so tests enumerate every edge exhaustively.
package order
