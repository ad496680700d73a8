package cancelreservation

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchReservation = "borrower has no pending reservation"
)

// Decide implements the business logic for canceling a reservation.
// The WasSatisfied flag on the resulting event tells downstream reactors
// whether a hold was freed: canceling a satisfied reservation must re-trigger
// queue advancement, canceling an unsatisfied one changes nothing about
// availability.
//
// Business Rules:
//
//	GIVEN: A borrower with BorrowerID queued for the book
//	WHEN: CancelReservation command is received
//	THEN: ReservationCanceled event is generated carrying the reservation's current satisfied flag
//	ERROR: "borrower has no pending reservation" if the borrower is not queued
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	borrowerID := command.BorrowerID.String()

	reservation, found := s.ReservationByBorrower(borrowerID)
	if !found {
		event := core.BuildOperationFailed(
			core.CancelingReservationFailedEventType,
			command.BookID, "", borrowerID,
			failureReasonNoSuchReservation, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchReservation))
	}

	return core.SuccessDecision(
		core.BuildReservationCanceled(
			command.BookID,
			command.BorrowerID,
			reservation.IsSatisfied,
			command.OccurredAt,
		),
	)
}
