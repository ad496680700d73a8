package core

import (
	"time"

	"github.com/google/uuid"
)

// LoanBecameShouldReturnSoonEventType is the event type identifier.
const LoanBecameShouldReturnSoonEventType = "LoanBecameShouldReturnSoon"

// LoanBecameShouldReturnSoon marks a loan as approaching its due date, so the
// borrower can be nudged to return or extend before it turns overdue.
type LoanBecameShouldReturnSoon struct {
	EventType  EventTypeString
	BookID     BookIDString
	LoanID     LoanIDString
	OccurredAt OccurredAtTS
}

// BuildLoanBecameShouldReturnSoon creates a new LoanBecameShouldReturnSoon event.
func BuildLoanBecameShouldReturnSoon(bookID uuid.UUID, loanID LoanIDString, occurredAt time.Time) LoanBecameShouldReturnSoon {
	event := LoanBecameShouldReturnSoon{
		EventType:  LoanBecameShouldReturnSoonEventType,
		BookID:     bookID.String(),
		LoanID:     loanID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LoanBecameShouldReturnSoon) IsEventType() string {
	return LoanBecameShouldReturnSoonEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e LoanBecameShouldReturnSoon) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e LoanBecameShouldReturnSoon) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanBecameShouldReturnSoon) IsErrorEvent() bool {
	return false
}
