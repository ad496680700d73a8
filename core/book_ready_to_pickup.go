package core

import (
	"time"

	"github.com/google/uuid"
)

// BookReadyToPickupEventType is the event type identifier.
const BookReadyToPickupEventType = "BookReadyToPickup"

// BookReadyToPickup represents a hold: a freed copy has been earmarked for the
// next queued reservation. The reservation becomes satisfied but keeps its
// queue position until the borrower picks the copy up or the hold expires.
type BookReadyToPickup struct {
	EventType      EventTypeString
	BookID         BookIDString
	BorrowerID     BorrowerIDString
	PickupDeadline time.Time
	OccurredAt     OccurredAtTS
}

// BuildBookReadyToPickup creates a new BookReadyToPickup event with
// PickupDeadline = occurredAt + PickupPeriod.
func BuildBookReadyToPickup(bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) BookReadyToPickup {
	event := BookReadyToPickup{
		EventType:      BookReadyToPickupEventType,
		BookID:         bookID.String(),
		BorrowerID:     borrowerID.String(),
		PickupDeadline: ToOccurredAt(occurredAt).Add(PickupPeriod),
		OccurredAt:     ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e BookReadyToPickup) IsEventType() string {
	return BookReadyToPickupEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e BookReadyToPickup) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e BookReadyToPickup) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReadyToPickup) IsErrorEvent() bool {
	return false
}
