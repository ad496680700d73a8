package markloanoverdue

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchLoan = "no such loan"
)

// Decide implements the business logic for flagging a loan as overdue.
//
// Business Rules:
//
//	GIVEN: An active loan with LoanID whose due date has passed
//	WHEN: MarkLoanOverdue command is received
//	THEN: LoanBecameOverdue event is generated
//	ERROR: "no such loan" if the loan does not exist
//	IDEMPOTENCY: If the loan is already overdue, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	loanID := command.LoanID.String()

	loan, found := s.LoanByID(loanID)
	if !found {
		event := core.BuildOperationFailed(
			core.MarkingLoanOverdueFailedEventType,
			command.BookID, "", "",
			failureReasonNoSuchLoan, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchLoan))
	}

	if loan.Status == core.LoanStatusOverdue {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildLoanBecameOverdue(command.BookID, loanID, command.OccurredAt),
	)
}
