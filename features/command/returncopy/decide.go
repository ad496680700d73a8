package returncopy

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchCopy  = "no such copy in inventory"
	failureReasonNotBorrowed = "copy is not borrowed by this borrower"
)

// Decide implements the business logic for returning a borrowed copy.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Returning removes the loan and leaves the copy free; deciding who gets the
// copy next is not this feature's job - the reservation queue reacts to the
// CopyReturned event.
//
// Business Rules:
//
//	GIVEN: A copy with ItemID borrowed by BorrowerID
//	WHEN: ReturnCopy command is received
//	THEN: CopyReturned event is generated
//	ERROR: "no such copy in inventory" if the copy was never appended
//	ERROR: "copy is not borrowed by this borrower" if no matching active loan exists
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	itemID := command.ItemID.String()
	borrowerID := command.BorrowerID.String()

	if _, found := s.ItemByID(itemID); !found {
		event := core.BuildOperationFailed(
			core.ReturningCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonNoSuchCopy, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchCopy))
	}

	if !hasMatchingLoan(s, itemID, borrowerID) {
		event := core.BuildOperationFailed(
			core.ReturningCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonNotBorrowed, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNotBorrowed))
	}

	return core.SuccessDecision(
		core.BuildCopyReturned(
			command.BookID,
			command.ItemID,
			command.BorrowerID,
			command.OccurredAt,
		),
	)
}

func hasMatchingLoan(s core.InventoryState, itemID core.ItemIDString, borrowerID core.BorrowerIDString) bool {
	for _, loan := range s.Loans {
		if loan.ItemID == itemID && loan.BorrowerID == borrowerID {
			return true
		}
	}

	return false
}
