package borrowcopy

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonAlreadyBorrowedBySameUser = "borrower already has a copy of this book"
	failureReasonNoSuchCopy                = "no such copy in inventory"
	failureReasonCopyAlreadyBorrowed       = "copy is already borrowed"
	failureReasonReservationConflict       = "every free copy is held for another borrower's reservation"
)

// Decide implements the business logic to determine whether a copy should be lent to a borrower.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A copy with ItemID and a borrower with BorrowerID
//	WHEN: BorrowCopy command is received
//	THEN: CopyBorrowed event is generated with WhenDue = now + the standard loan period;
//	      if the borrower had a reservation for this book, ReservationBecameLoan is
//	      generated alongside so the queue entry is consumed by the loan
//	ERROR: "borrower already has a copy of this book" if the borrower holds a loan on another copy
//	ERROR: "no such copy in inventory" if the copy was never appended, is lost, or written off
//	ERROR: "copy is already borrowed" if the copy is out on loan
//	ERROR: "every free copy is held for another borrower's reservation" if all free
//	       copies are earmarked by other borrowers' unexpired satisfied reservations
//	IDEMPOTENCY: If this copy is already borrowed by this borrower, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	itemID := command.ItemID.String()
	borrowerID := command.BorrowerID.String()
	now := command.OccurredAt

	if loan, found := s.LoanByBorrower(borrowerID); found {
		if loan.ItemID == itemID {
			return core.IdempotentDecision()
		}

		event := core.BuildOperationFailed(
			core.BorrowingCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonAlreadyBorrowedBySameUser, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrAlreadyBorrowedBySameUser))
	}

	item, found := s.ItemByID(itemID)
	if !found || item.WrittenOff || item.Lost {
		event := core.BuildOperationFailed(
			core.BorrowingCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonNoSuchCopy, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchCopy))
	}

	if item.Borrowed {
		event := core.BuildOperationFailed(
			core.BorrowingCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonCopyAlreadyBorrowed, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrCopyAlreadyBorrowed))
	}

	reservation, hasReservation := s.ReservationByBorrower(borrowerID)
	ownsActiveHold := hasReservation && reservation.IsSatisfied && reservation.PickupDeadline.After(now)

	// A borrower without a hold of their own can only take a copy that is not
	// earmarked by someone else's unexpired hold.
	if !ownsActiveHold && s.VacantCopyCount(now) <= 0 {
		event := core.BuildOperationFailed(
			core.BorrowingCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonReservationConflict, now)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrReservationConflict))
	}

	events := core.DomainEvents{
		core.BuildCopyBorrowed(
			command.BookID,
			command.ItemID,
			command.LoanID,
			command.BorrowerID,
			now,
		),
	}

	if hasReservation {
		events = append(events, core.BuildReservationBecameLoan(command.BookID, command.BorrowerID, now))
	}

	return core.SuccessDecision(events...)
}
