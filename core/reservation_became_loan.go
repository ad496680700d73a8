package core

import (
	"time"

	"github.com/google/uuid"
)

// ReservationBecameLoanEventType is the event type identifier.
const ReservationBecameLoanEventType = "ReservationBecameLoan"

// ReservationBecameLoan represents a satisfied reservation turning into a loan
// when the reserver picks their copy up. It is emitted together with
// CopyBorrowed and removes the reservation from the queue.
type ReservationBecameLoan struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildReservationBecameLoan creates a new ReservationBecameLoan event.
func BuildReservationBecameLoan(bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) ReservationBecameLoan {
	event := ReservationBecameLoan{
		EventType:  ReservationBecameLoanEventType,
		BookID:     bookID.String(),
		BorrowerID: borrowerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReservationBecameLoan) IsEventType() string {
	return ReservationBecameLoanEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e ReservationBecameLoan) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e ReservationBecameLoan) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationBecameLoan) IsErrorEvent() bool {
	return false
}
