package markbookavailable

import (
	"exlibris/core"
)

// Decide implements the business logic for announcing general availability.
// Like all corrective commands it re-validates at apply time: a redelivered
// trigger finds the announcement already made (or the copy already taken) and
// produces nothing.
//
// Business Rules:
//
//	GIVEN: A book with a vacant copy and an empty unsatisfied queue
//	WHEN: MarkBookAsAvailable command is received
//	THEN: BookBecameAvailable event is generated carrying the vacant copy count
//	IDEMPOTENCY: No event when availability is already announced, no vacant
//	             copy exists, or someone is still waiting in the queue
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	now := command.OccurredAt

	if s.AvailabilityAnnounced {
		return core.IdempotentDecision()
	}

	if s.VacantCopyCount(now) <= 0 {
		return core.IdempotentDecision()
	}

	if s.UnsatisfiedReservationCount() > 0 {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookBecameAvailable(command.BookID, s.VacantCopyCount(now), now),
	)
}
