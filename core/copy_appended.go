package core

import (
	"time"

	"github.com/google/uuid"
)

// CopyAppendedEventType is the event type identifier.
const CopyAppendedEventType = "CopyAppended"

// CopyAppended represents when a new physical copy is appended to a book's inventory.
// The first CopyAppended event for a book creates its inventory.
type CopyAppended struct {
	EventType  EventTypeString
	BookID     BookIDString
	ItemID     ItemIDString
	Tag        string
	OccurredAt OccurredAtTS
}

// BuildCopyAppended creates a new CopyAppended event.
func BuildCopyAppended(bookID uuid.UUID, itemID uuid.UUID, tag string, occurredAt time.Time) CopyAppended {
	event := CopyAppended{
		EventType:  CopyAppendedEventType,
		BookID:     bookID.String(),
		ItemID:     itemID.String(),
		Tag:        tag,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CopyAppended) IsEventType() string {
	return CopyAppendedEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e CopyAppended) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e CopyAppended) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e CopyAppended) IsErrorEvent() bool {
	return false
}
