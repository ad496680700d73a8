package core

import (
	"time"

	"github.com/google/uuid"
)

// LoansExtensionAllowedEventType is the event type identifier.
const LoansExtensionAllowedEventType = "LoansExtensionAllowed"

// LoansExtensionAllowed represents the LoanExtensionController restoring
// extension rights to the named borrowers' loans after backlog pressure dropped.
type LoansExtensionAllowed struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerIDs []BorrowerIDString
	OccurredAt  OccurredAtTS
}

// BuildLoansExtensionAllowed creates a new LoansExtensionAllowed event.
func BuildLoansExtensionAllowed(bookID uuid.UUID, borrowerIDs []BorrowerIDString, occurredAt time.Time) LoansExtensionAllowed {
	event := LoansExtensionAllowed{
		EventType:   LoansExtensionAllowedEventType,
		BookID:      bookID.String(),
		BorrowerIDs: borrowerIDs,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LoansExtensionAllowed) IsEventType() string {
	return LoansExtensionAllowedEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e LoansExtensionAllowed) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e LoansExtensionAllowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoansExtensionAllowed) IsErrorEvent() bool {
	return false
}
