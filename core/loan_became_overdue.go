package core

import (
	"time"

	"github.com/google/uuid"
)

// LoanBecameOverdueEventType is the event type identifier.
const LoanBecameOverdueEventType = "LoanBecameOverdue"

// LoanBecameOverdue represents the moment a loan's due date passed without a
// return. The transition is driven by an external timer, like pickup-hold
// expiry; only the state change is modeled here.
type LoanBecameOverdue struct {
	EventType  EventTypeString
	BookID     BookIDString
	LoanID     LoanIDString
	OccurredAt OccurredAtTS
}

// BuildLoanBecameOverdue creates a new LoanBecameOverdue event.
func BuildLoanBecameOverdue(bookID uuid.UUID, loanID LoanIDString, occurredAt time.Time) LoanBecameOverdue {
	event := LoanBecameOverdue{
		EventType:  LoanBecameOverdueEventType,
		BookID:     bookID.String(),
		LoanID:     loanID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LoanBecameOverdue) IsEventType() string {
	return LoanBecameOverdueEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e LoanBecameOverdue) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e LoanBecameOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoanBecameOverdue) IsErrorEvent() bool {
	return false
}
