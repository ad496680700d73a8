package core

import (
	"time"

	"github.com/google/uuid"
)

// ReservationAddedEventType is the event type identifier.
const ReservationAddedEventType = "ReservationAdded"

// ReservationAdded represents when a borrower joins the tail of a book's
// reservation queue. Insertion order is the fairness contract: first
// reserved, first served.
type ReservationAdded struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildReservationAdded creates a new ReservationAdded event.
// OccurredAt doubles as the reservation's whenRequested timestamp.
func BuildReservationAdded(bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) ReservationAdded {
	event := ReservationAdded{
		EventType:  ReservationAddedEventType,
		BookID:     bookID.String(),
		BorrowerID: borrowerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReservationAdded) IsEventType() string {
	return ReservationAddedEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e ReservationAdded) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e ReservationAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationAdded) IsErrorEvent() bool {
	return false
}
