package extendloan

import (
	"fmt"

	"exlibris/core"
)

const (
	failureReasonNoSuchLoan          = "no such loan"
	failureReasonExtensionNotAllowed = "loan extension is not allowed"
)

// Decide implements the business logic for extending a loan.
// Extension moves the due date out by one standard loan period and consumes
// the loan's extension permission; the permission comes back only when the
// reservation backlog shrinks and the extension controller re-allows it.
//
// Business Rules:
//
//	GIVEN: An active loan with LoanID
//	WHEN: ExtendLoan command is received
//	THEN: LoanPeriodExtended event is generated with NewDueDate = current due date + loan period
//	ERROR: "no such loan" if the loan does not exist
//	ERROR: "loan extension is not allowed" if the loan's extension permission is consumed or forbidden
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	loanID := command.LoanID.String()

	loan, found := s.LoanByID(loanID)
	if !found {
		event := core.BuildOperationFailed(
			core.ExtendingLoanFailedEventType,
			command.BookID, "", "",
			failureReasonNoSuchLoan, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrNoSuchLoan))
	}

	if !loan.IsAllowedExtension {
		event := core.BuildOperationFailed(
			core.ExtendingLoanFailedEventType,
			command.BookID, loan.ItemID, loan.BorrowerID,
			failureReasonExtensionNotAllowed, command.OccurredAt)

		return core.ErrorDecision(event, fmt.Errorf("%s: %w", event.EventType, core.ErrExtensionNotAllowed))
	}

	return core.SuccessDecision(
		core.BuildLoanPeriodExtended(
			command.BookID,
			loanID,
			loan.WhenDue.Add(core.LoanPeriod),
			command.OccurredAt,
		),
	)
}
