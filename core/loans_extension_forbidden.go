package core

import (
	"time"

	"github.com/google/uuid"
)

// LoansExtensionForbiddenEventType is the event type identifier.
const LoansExtensionForbiddenEventType = "LoansExtensionForbidden"

// LoansExtensionForbidden represents the LoanExtensionController taking
// extension rights away from the named borrowers' loans because the
// reservation backlog needs their copies.
type LoansExtensionForbidden struct {
	EventType   EventTypeString
	BookID      BookIDString
	BorrowerIDs []BorrowerIDString
	OccurredAt  OccurredAtTS
}

// BuildLoansExtensionForbidden creates a new LoansExtensionForbidden event.
func BuildLoansExtensionForbidden(bookID uuid.UUID, borrowerIDs []BorrowerIDString, occurredAt time.Time) LoansExtensionForbidden {
	event := LoansExtensionForbidden{
		EventType:   LoansExtensionForbiddenEventType,
		BookID:      bookID.String(),
		BorrowerIDs: borrowerIDs,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e LoansExtensionForbidden) IsEventType() string {
	return LoansExtensionForbiddenEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e LoansExtensionForbidden) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e LoansExtensionForbidden) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e LoansExtensionForbidden) IsErrorEvent() bool {
	return false
}
