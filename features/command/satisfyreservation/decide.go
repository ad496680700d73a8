package satisfyreservation

import (
	"exlibris/core"
)

// Decide implements the business logic for turning a free copy into a pickup
// hold for the borrower's reservation. The command is corrective: it is derived
// from an event that may be redelivered or raced by another writer, so every
// precondition is re-validated here and any mismatch is a silent no-op rather
// than a rejection.
//
// Business Rules:
//
//	GIVEN: A borrower with an unsatisfied reservation and a vacant copy
//	WHEN: SatisfyReservation command is received
//	THEN: BookReadyToPickup event is generated with PickupDeadline = now + pickup period
//	IDEMPOTENCY: No event when the reservation is gone, already satisfied,
//	             or no vacant copy exists anymore
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	now := command.OccurredAt

	reservation, found := s.ReservationByBorrower(command.BorrowerID.String())
	if !found || reservation.IsSatisfied {
		return core.IdempotentDecision()
	}

	if s.VacantCopyCount(now) <= 0 {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildBookReadyToPickup(command.BookID, command.BorrowerID, now),
	)
}
