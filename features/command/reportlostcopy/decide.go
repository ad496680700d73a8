package reportlostcopy

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchCopy  = "no such copy in inventory"
	failureReasonNotBorrowed = "copy is not borrowed by this borrower"
)

// Decide implements the business logic for reporting a borrowed copy as lost.
// The loan ends and the copy is flagged lost; it never returns to the
// available pool.
//
// Business Rules:
//
//	GIVEN: A copy with ItemID borrowed by BorrowerID
//	WHEN: ReportLostCopy command is received
//	THEN: CopyReportedLost event is generated
//	ERROR: "no such copy in inventory" if the copy was never appended
//	ERROR: "copy is not borrowed by this borrower" if no matching active loan exists
//	IDEMPOTENCY: If the copy is already flagged lost, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	itemID := command.ItemID.String()
	borrowerID := command.BorrowerID.String()

	item, found := s.ItemByID(itemID)
	if !found {
		event := core.BuildOperationFailed(
			core.ReportingLostCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonNoSuchCopy, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchCopy))
	}

	if item.Lost {
		return core.IdempotentDecision()
	}

	if !item.Borrowed || item.BorrowedBy != borrowerID {
		event := core.BuildOperationFailed(
			core.ReportingLostCopyFailedEventType,
			command.BookID, itemID, borrowerID,
			failureReasonNotBorrowed, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNotBorrowed))
	}

	return core.SuccessDecision(
		core.BuildCopyReportedLost(
			command.BookID,
			command.ItemID,
			command.BorrowerID,
			command.OccurredAt,
		),
	)
}
