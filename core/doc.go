// Package core contains the pure domain model of the inventory coordination
// subsystem: the domain events for one book's inventory, the InventoryState
// fold over those events, and the DecisionResult type returned by the
// Decide functions of the command features.
//
// Nothing in this package performs I/O or depends on the event store; it is
// the functional core that the shell and the feature packages orchestrate.
package core
