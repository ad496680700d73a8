package forbidloansextension

import (
	"exlibris/core"
)

// Decide implements the business logic for revoking extension permissions.
// The named set is computed from a snapshot that may be stale by the time the
// command applies, so it is filtered down to borrowers whose loans are still
// active and still allowed extension. An empty remainder is a no-op.
//
// Business Rules:
//
//	GIVEN: Borrowers with active, extension-eligible loans of the book
//	WHEN: ForbidLoansExtension command is received
//	THEN: LoansExtensionForbidden event is generated naming the still-eligible subset
//	IDEMPOTENCY: No event when none of the named loans is still eligible
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	s := core.ProjectInventory(history)

	stillAllowed := make([]core.BorrowerIDString, 0, len(command.BorrowerIDs))
	for _, borrowerID := range command.BorrowerIDs {
		if loan, found := s.LoanByBorrower(borrowerID); found && loan.IsAllowedExtension {
			stillAllowed = append(stillAllowed, borrowerID)
		}
	}

	if len(stillAllowed) == 0 {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildLoansExtensionForbidden(command.BookID, stillAllowed, command.OccurredAt),
	)
}
