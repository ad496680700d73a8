package markloanshouldreturnsoon

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchLoan = "no such loan"
)

// Decide implements the business logic for flagging a loan as due soon.
//
// Business Rules:
//
//	GIVEN: An active loan with LoanID approaching its due date
//	WHEN: MarkLoanShouldReturnSoon command is received
//	THEN: LoanBecameShouldReturnSoon event is generated
//	ERROR: "no such loan" if the loan does not exist
//	IDEMPOTENCY: If the loan is already flagged as due soon, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	loanID := command.LoanID.String()

	loan, found := s.LoanByID(loanID)
	if !found {
		event := core.BuildOperationFailed(
			core.MarkingLoanShouldReturnSoonFailedEventType,
			command.BookID, "", "",
			failureReasonNoSuchLoan, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchLoan))
	}

	if loan.Status == core.LoanStatusShouldReturnSoon {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildLoanBecameShouldReturnSoon(command.BookID, loanID, command.OccurredAt),
	)
}
