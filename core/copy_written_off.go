package core

import (
	"time"

	"github.com/google/uuid"
)

// CopyWrittenOffEventType is the event type identifier.
const CopyWrittenOffEventType = "CopyWrittenOff"

// CopyWrittenOff represents when a copy is written off the active inventory.
// The copy is flagged, not deleted - its history stays in the event log.
type CopyWrittenOff struct {
	EventType  EventTypeString
	BookID     BookIDString
	ItemID     ItemIDString
	Reason     string
	OccurredAt OccurredAtTS
}

// BuildCopyWrittenOff creates a new CopyWrittenOff event.
func BuildCopyWrittenOff(bookID uuid.UUID, itemID uuid.UUID, reason string, occurredAt time.Time) CopyWrittenOff {
	event := CopyWrittenOff{
		EventType:  CopyWrittenOffEventType,
		BookID:     bookID.String(),
		ItemID:     itemID.String(),
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CopyWrittenOff) IsEventType() string {
	return CopyWrittenOffEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e CopyWrittenOff) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e CopyWrittenOff) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e CopyWrittenOff) IsErrorEvent() bool {
	return false
}
