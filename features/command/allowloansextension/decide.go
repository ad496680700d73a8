package allowloansextension

import (
	"exlibris/core"
)

// Decide implements the business logic for restoring extension permissions.
// The named set is filtered to borrowers whose loans are still active and
// still forbidden; an empty remainder produces nothing.
//
// Business Rules:
//
//	GIVEN: Borrowers with active, extension-forbidden loans of the book
//	WHEN: AllowLoansExtension command is received
//	THEN: LoansExtensionAllowed event is generated naming the still-forbidden subset
//	IDEMPOTENCY: No event when none of the named loans is still forbidden
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	stillForbidden := make([]core.BorrowerIDString, 0, len(command.BorrowerIDs))
	for _, borrowerID := range command.BorrowerIDs {
		if loan, found := s.LoanByBorrower(borrowerID); found && !loan.IsAllowedExtension {
			stillForbidden = append(stillForbidden, borrowerID)
		}
	}

	if len(stillForbidden) == 0 {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildLoansExtensionAllowed(command.BookID, stillForbidden, command.OccurredAt),
	)
}
