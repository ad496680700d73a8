package core

import (
	"time"

	"github.com/google/uuid"
)

// LoanPeriodExtendedEventType is the event type identifier.
const LoanPeriodExtendedEventType = "LoanPeriodExtended"

// LoanPeriodExtended represents a granted loan extension. The due date moves
// out by one LoanPeriod and the loan's extension allowance resets to false
// until the LoanExtensionController re-allows it.
type LoanPeriodExtended struct {
	EventType  EventTypeString
	BookID     BookIDString
	LoanID     LoanIDString
	NewDueDate time.Time
	OccurredAt OccurredAtTS
}

// BuildLoanPeriodExtended creates a new LoanPeriodExtended event.
func BuildLoanPeriodExtended(bookID uuid.UUID, loanID LoanIDString, newDueDate time.Time, occurredAt time.Time) LoanPeriodExtended {
	event := LoanPeriodExtended{
		EventType:  LoanPeriodExtendedEventType,
		BookID:     bookID.String(),
		LoanID:     loanID,
		NewDueDate: ToOccurredAt(newDueDate),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LoanPeriodExtended) IsEventType() string {
	return LoanPeriodExtendedEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e LoanPeriodExtended) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e LoanPeriodExtended) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanPeriodExtended) IsErrorEvent() bool {
	return false
}
