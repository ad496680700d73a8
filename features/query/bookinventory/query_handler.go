// Package bookinventory implements the Book Inventory query use case.
//
// This feature folds one book's full event history into its current
// InventoryState: copies with their flags, active loans, and the reservation
// queue in insertion order. It is the read side the coordinators consult
// before issuing corrective commands, and is equally usable by projections
// or a UI.
package bookinventory

import (
	"context"

	"exlibris/core"
	"exlibris/eventstore"
	"exlibris/shell"
)

// EventStore defines the interface needed by the QueryHandler for event store operations.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventStore EventStore
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency.
func NewQueryHandler(eventStore EventStore) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle executes the query and returns the book's current inventory state.
// A book with no history at all yields a state with Exists=false.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.InventoryState, error) {
	filter := shell.BuildInventoryEventFilter(query.BookID)

	storableEvents, _, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return core.InventoryState{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return core.InventoryState{}, err
	}

	return core.ProjectInventory(history), nil
}
