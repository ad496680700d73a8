package reservebook

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonAlreadyBorrowedBySameUser = "borrower already has a copy of this book"
	failureReasonAlreadyReservedBySameUser = "borrower already has a reservation for this book"
	failureReasonBookAvailable             = "book has a copy available for borrowing"
)

// Decide implements the business logic for joining a book's reservation queue.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a borrower with BorrowerID
//	WHEN: ReserveBook command is received
//	THEN: ReservationAdded event is generated, appended to the tail of the queue
//	ERROR: "borrower already has a copy of this book" if the borrower holds an active loan
//	ERROR: "borrower already has a reservation for this book" if the borrower is already queued
//	ERROR: "book has a copy available for borrowing" if a free, unearmarked copy
//	       exists right now - the borrower should simply borrow it
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	borrowerID := command.BorrowerID.String()
	now := command.OccurredAt

	if _, found := s.LoanByBorrower(borrowerID); found {
		event := core.BuildOperationFailed(
			core.ReservingBookFailedEventType,
			command.BookID, "", borrowerID,
			failureReasonAlreadyBorrowedBySameUser, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrAlreadyBorrowedBySameUser))
	}

	if _, found := s.ReservationByBorrower(borrowerID); found {
		event := core.BuildOperationFailed(
			core.ReservingBookFailedEventType,
			command.BookID, "", borrowerID,
			failureReasonAlreadyReservedBySameUser, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrAlreadyReservedBySameUser))
	}

	if s.VacantCopyCount(now) > 0 {
		event := core.BuildOperationFailed(
			core.ReservingBookFailedEventType,
			command.BookID, "", borrowerID,
			failureReasonBookAvailable, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrBookAvailableForBorrowing))
	}

	return core.SuccessDecision(
		core.BuildReservationAdded(command.BookID, command.BorrowerID, now),
	)
}
