package core

import (
	"time"

	"github.com/google/uuid"
)

// ReservationCanceledEventType is the event type identifier.
const ReservationCanceledEventType = "ReservationCanceled"

// ReservationCanceled represents when a borrower cancels their reservation.
// WasSatisfied is copied from the reservation at cancellation time; it decides
// whether the ReservationSatisfier must re-trigger queue advancement (a
// satisfied-then-canceled reservation frees a hold) and whether the
// LoanExtensionController must rebalance (an unsatisfied cancellation shrinks
// the backlog).
type ReservationCanceled struct {
	EventType    EventTypeString
	BookID       BookIDString
	BorrowerID   BorrowerIDString
	WasSatisfied bool
	OccurredAt   OccurredAtTS
}

// BuildReservationCanceled creates a new ReservationCanceled event.
func BuildReservationCanceled(bookID uuid.UUID, borrowerID uuid.UUID, wasSatisfied bool, occurredAt time.Time) ReservationCanceled {
	event := ReservationCanceled{
		EventType:    ReservationCanceledEventType,
		BookID:       bookID.String(),
		BorrowerID:   borrowerID.String(),
		WasSatisfied: wasSatisfied,
		OccurredAt:   ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e ReservationCanceled) IsEventType() string {
	return ReservationCanceledEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e ReservationCanceled) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e ReservationCanceled) IsErrorEvent() bool {
	return false
}
