package core

import "errors"

// Validation rejections. A rejected command is simply not applied; the
// sentinel is returned to the command's originator together with an appended
// failure event so a UI or audit trail can render the cause.
var (
	// ErrNoSuchCopy is returned when the referenced copy is not part of the active inventory.
	ErrNoSuchCopy = errors.New("no such copy in inventory")

	// ErrCopyAlreadyBorrowed is returned when the target copy is currently borrowed.
	ErrCopyAlreadyBorrowed = errors.New("copy is already borrowed")

	// ErrReservationConflict is returned when every free copy is earmarked for
	// another borrower's unexpired satisfied reservation.
	ErrReservationConflict = errors.New("copy is held for another borrower's reservation")

	// ErrNotBorrowed is returned when no matching active loan exists.
	ErrNotBorrowed = errors.New("copy is not borrowed by this borrower")

	// ErrAlreadyBorrowedBySameUser is returned when the borrower already holds a copy of this book.
	ErrAlreadyBorrowedBySameUser = errors.New("borrower already has a copy of this book")

	// ErrAlreadyReservedBySameUser is returned when the borrower already has a pending reservation.
	ErrAlreadyReservedBySameUser = errors.New("borrower already has a reservation for this book")

	// ErrBookAvailableForBorrowing is returned upon an attempt to reserve a book
	// that has a copy free for borrowing right now.
	ErrBookAvailableForBorrowing = errors.New("book has a copy available for borrowing")

	// ErrExtensionNotAllowed is returned when the loan is currently forbidden extension.
	ErrExtensionNotAllowed = errors.New("loan extension is not allowed")

	// ErrNoSuchLoan is returned when the referenced loan does not exist.
	ErrNoSuchLoan = errors.New("no such loan")

	// ErrNoSuchReservation is returned when the borrower has no pending reservation.
	ErrNoSuchReservation = errors.New("no such reservation")

	// ErrNoSuchHold is returned when no satisfied, held reservation exists for the borrower.
	ErrNoSuchHold = errors.New("no held reservation for this borrower")

	// ErrRemovalReasonRequired is returned when a write-off command carries no reason.
	ErrRemovalReasonRequired = errors.New("write-off reason is required")
)

var rejections = []error{
	ErrNoSuchCopy,
	ErrCopyAlreadyBorrowed,
	ErrReservationConflict,
	ErrNotBorrowed,
	ErrAlreadyBorrowedBySameUser,
	ErrAlreadyReservedBySameUser,
	ErrBookAvailableForBorrowing,
	ErrExtensionNotAllowed,
	ErrNoSuchLoan,
	ErrNoSuchReservation,
	ErrNoSuchHold,
	ErrRemovalReasonRequired,
}

// IsRejection reports whether err is (or wraps) one of the validation
// rejections. Coordinators use this to tell "someone else already fixed it"
// apart from infrastructure failures.
func IsRejection(err error) bool {
	for _, rejection := range rejections {
		if errors.Is(err, rejection) {
			return true
		}
	}

	return false
}
