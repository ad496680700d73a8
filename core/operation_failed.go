package core

import (
	"time"

	"github.com/google/uuid"
)

// Event type identifiers for the failure events, one per fallible command family.
const (
	BorrowingCopyFailedEventType        = "BorrowingCopyFailed"
	ReturningCopyFailedEventType        = "ReturningCopyFailed"
	ReservingBookFailedEventType        = "ReservingBookFailed"
	CancelingReservationFailedEventType = "CancelingReservationFailed"
	ExtendingLoanFailedEventType        = "ExtendingLoanFailed"
	WritingOffCopyFailedEventType       = "WritingOffCopyFailed"
	ReportingLostCopyFailedEventType    = "ReportingLostCopyFailed"
	ExpiringReservationFailedEventType  = "ExpiringReservationFailed"

	MarkingLoanOverdueFailedEventType          = "MarkingLoanOverdueFailed"
	MarkingLoanShouldReturnSoonFailedEventType = "MarkingLoanShouldReturnSoonFailed"
)

// OperationFailed represents a rejected command. The concrete event type is
// carried in the EventType field (same approach as a dynamic event type), so
// every failure family shares this structure while staying distinguishable in
// the event log. ItemID and BorrowerID may be empty when the failed command
// did not reference them; FailureReason is the human-readable cause for the
// audit trail.
type OperationFailed struct {
	EventType     EventTypeString
	BookID        BookIDString
	ItemID        ItemIDString
	BorrowerID    BorrowerIDString
	FailureReason string
	OccurredAt    OccurredAtTS
}

// BuildOperationFailed creates a new failure event of the given event type.
func BuildOperationFailed(
	eventType EventTypeString,
	bookID uuid.UUID,
	itemID ItemIDString,
	borrowerID BorrowerIDString,
	failureReason string,
	occurredAt time.Time,
) OperationFailed {

	event := OperationFailed{
		EventType:     eventType,
		BookID:        bookID.String(),
		ItemID:        itemID,
		BorrowerID:    borrowerID,
		FailureReason: failureReason,
		OccurredAt:    ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier carried by this failure event.
func (e OperationFailed) IsEventType() string {
	return e.EventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e OperationFailed) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e OperationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a rejected command.
func (e OperationFailed) IsErrorEvent() bool {
	return true
}
