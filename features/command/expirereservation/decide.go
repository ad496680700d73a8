package expirereservation

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchHold = "no held reservation for this borrower"
)

// Decide implements the business logic for expiring an unclaimed pickup hold.
//
// Business Rules:
//
//	GIVEN: A borrower with a satisfied reservation awaiting pickup
//	WHEN: MarkReservationExpired command is received
//	THEN: ReservationPickUpPeriodExpired event is generated, removing the reservation
//	ERROR: "no held reservation for this borrower" if the borrower has no
//	       reservation or it was never satisfied
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	borrowerID := command.BorrowerID.String()

	reservation, found := s.ReservationByBorrower(borrowerID)
	if !found || !reservation.IsSatisfied {
		event := core.BuildOperationFailed(
			core.ExpiringReservationFailedEventType,
			command.BookID, "", borrowerID,
			failureReasonNoSuchHold, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchHold))
	}

	return core.SuccessDecision(
		core.BuildReservationPickUpPeriodExpired(command.BookID, command.BorrowerID, command.OccurredAt),
	)
}
