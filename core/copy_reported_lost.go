package core

import (
	"time"

	"github.com/google/uuid"
)

// CopyReportedLostEventType is the event type identifier.
const CopyReportedLostEventType = "CopyReportedLost"

// CopyReportedLost represents when a borrower reports a borrowed copy as lost.
// The loan ends and the copy is flagged lost until it is written off.
type CopyReportedLost struct {
	EventType  EventTypeString
	BookID     BookIDString
	ItemID     ItemIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildCopyReportedLost creates a new CopyReportedLost event.
func BuildCopyReportedLost(bookID uuid.UUID, itemID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) CopyReportedLost {
	event := CopyReportedLost{
		EventType:  CopyReportedLostEventType,
		BookID:     bookID.String(),
		ItemID:     itemID.String(),
		BorrowerID: borrowerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CopyReportedLost) IsEventType() string {
	return CopyReportedLostEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e CopyReportedLost) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e CopyReportedLost) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e CopyReportedLost) IsErrorEvent() bool {
	return false
}
