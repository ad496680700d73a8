package core

import (
	"time"

	"github.com/google/uuid"
)

// CopyBorrowedEventType is the event type identifier.
const CopyBorrowedEventType = "CopyBorrowed"

// CopyBorrowed represents when a copy is borrowed by a borrower.
// It creates the loan with the standard due date; extension is allowed
// until the LoanExtensionController forbids it.
type CopyBorrowed struct {
	EventType  EventTypeString
	BookID     BookIDString
	ItemID     ItemIDString
	LoanID     LoanIDString
	BorrowerID BorrowerIDString
	WhenDue    time.Time
	OccurredAt OccurredAtTS
}

// BuildCopyBorrowed creates a new CopyBorrowed event with WhenDue = occurredAt + LoanPeriod.
func BuildCopyBorrowed(bookID uuid.UUID, itemID uuid.UUID, loanID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) CopyBorrowed {
	event := CopyBorrowed{
		EventType:  CopyBorrowedEventType,
		BookID:     bookID.String(),
		ItemID:     itemID.String(),
		LoanID:     loanID.String(),
		BorrowerID: borrowerID.String(),
		WhenDue:    ToOccurredAt(occurredAt).Add(LoanPeriod),
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// IsEventType returns the event type identifier.
func (e CopyBorrowed) IsEventType() string {
	return CopyBorrowedEventType
}

// AffectsBook returns the identifier of the book's inventory.
func (e CopyBorrowed) AffectsBook() BookIDString {
	return e.BookID
}

// HasOccurredAt returns when this event occurred.
func (e CopyBorrowed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e CopyBorrowed) IsErrorEvent() bool {
	return false
}
