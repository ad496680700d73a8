package core

import (
	"time"

	"github.com/google/uuid"
)

// CopyReturnedEventType is the event type identifier.
const CopyReturnedEventType = "CopyReturned"

// CopyReturned represents when a borrowed copy comes back. It removes the loan
// and leaves the copy free; who gets the copy next is the ReservationSatisfier's
// decision, made in reaction to this event.
type CopyReturned struct {
	EventType  EventTypeString
	BookID     BookIDString
	ItemID     ItemIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildCopyReturned creates a new CopyReturned event.
func BuildCopyReturned(bookID uuid.UUID, itemID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) CopyReturned {
	event := CopyReturned{
		EventType:  CopyReturnedEventType,
		BookID:     bookID.String(),
		ItemID:     itemID.String(),
		BorrowerID: borrowerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CopyReturned) IsEventType() string {
	return CopyReturnedEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e CopyReturned) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e CopyReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e CopyReturned) IsErrorEvent() bool {
	return false
}
