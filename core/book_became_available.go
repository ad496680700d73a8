package core

import (
	"time"

	"github.com/google/uuid"
)

// BookBecameAvailableEventType is the event type identifier.
const BookBecameAvailableEventType = "BookBecameAvailable"

// BookBecameAvailable announces that a freed copy entered the general
// availability pool because no reservation was waiting for it. It mainly
// informs read models; in the fold it only flips the announcement flag
// that keeps re-deliveries from producing duplicate announcements.
type BookBecameAvailable struct {
	EventType      EventTypeString
	BookID         BookIDString
	AvailableCount int
	OccurredAt     OccurredAtTS
}

// BuildBookBecameAvailable creates a new BookBecameAvailable event.
func BuildBookBecameAvailable(bookID uuid.UUID, availableCount int, occurredAt time.Time) BookBecameAvailable {
	event := BookBecameAvailable{
		EventType:      BookBecameAvailableEventType,
		BookID:         bookID.String(),
		AvailableCount: availableCount,
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookBecameAvailable) IsEventType() string {
	return BookBecameAvailableEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e BookBecameAvailable) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e BookBecameAvailable) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookBecameAvailable) IsErrorEvent() bool {
	return false
}
