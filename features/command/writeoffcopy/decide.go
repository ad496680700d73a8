package writeoffcopy

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonReasonRequired = "a write-off reason is required"
	failureReasonNoSuchCopy     = "no such copy in inventory"
	failureReasonCopyIsBorrowed = "copy is currently borrowed"
)

// Decide implements the business logic for writing a copy off the inventory.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//
//	GIVEN: A copy with ItemID in the book's inventory
//	WHEN: WriteOffCopy command is received
//	THEN: CopyWrittenOff event is generated
//	ERROR: "a write-off reason is required" if the command carries no reason
//	ERROR: "no such copy in inventory" if the copy was never appended
//	ERROR: "copy is currently borrowed" if the copy is out on loan
//	IDEMPOTENCY: If the copy is already written off, no event generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.Reason == "" {
		event := core.BuildOperationFailed(
			core.WritingOffCopyFailedEventType,
			command.BookID, command.ItemID.String(), "",
			failureReasonReasonRequired, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrRemovalReasonRequired))
	}

	s := core.ProjectInventory(history)

	item, found := s.ItemByID(command.ItemID.String())
	if !found {
		event := core.BuildOperationFailed(
			core.WritingOffCopyFailedEventType,
			command.BookID, command.ItemID.String(), "",
			failureReasonNoSuchCopy, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchCopy))
	}

	if item.WrittenOff {
		return core.IdempotentDecision()
	}

	if item.Borrowed {
		event := core.BuildOperationFailed(
			core.WritingOffCopyFailedEventType,
			command.BookID, command.ItemID.String(), item.BorrowedBy,
			failureReasonCopyIsBorrowed, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrCopyAlreadyBorrowed))
	}

	return core.SuccessDecision(
		core.BuildCopyWrittenOff(
			command.BookID,
			command.ItemID,
			command.Reason,
			command.OccurredAt,
		),
	)
}
