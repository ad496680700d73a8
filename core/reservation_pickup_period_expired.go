package core

import (
	"time"

	"github.com/google/uuid"
)

// ReservationPickUpPeriodExpiredEventType is the event type identifier.
const ReservationPickUpPeriodExpiredEventType = "ReservationPickUpPeriodExpired"

// ReservationPickUpPeriodExpired represents when a satisfied reservation's
// pickup hold lapses because the borrower never appeared. The reservation
// leaves the queue and the copy is free again.
type ReservationPickUpPeriodExpired struct {
	EventType  EventTypeString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildReservationPickUpPeriodExpired creates a new ReservationPickUpPeriodExpired event.
func BuildReservationPickUpPeriodExpired(bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) ReservationPickUpPeriodExpired {
	event := ReservationPickUpPeriodExpired{
		EventType:  ReservationPickUpPeriodExpiredEventType,
		BookID:     bookID.String(),
		BorrowerID: borrowerID.String(),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReservationPickUpPeriodExpired) IsEventType() string {
	return ReservationPickUpPeriodExpiredEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e ReservationPickUpPeriodExpired) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e ReservationPickUpPeriodExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationPickUpPeriodExpired) IsErrorEvent() bool {
	return false
}
