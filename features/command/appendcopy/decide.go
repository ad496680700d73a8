package appendcopy

import (
	"exlibris/core"
)

// Decide implements the business logic for appending a copy to the inventory.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A book inventory with BookID
//	WHEN: AppendCopy command is received
//	THEN: CopyAppended event is generated
//	IDEMPOTENCY: If a copy with this ItemID is already part of the inventory, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	if _, found := s.ItemByID(command.ItemID.String()); found {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildCopyAppended(
			command.BookID,
			command.ItemID,
			command.Tag,
			command.OccurredAt,
		),
	)
}
