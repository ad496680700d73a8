package core

import (
	"time"
)

// InventoryItem is one physical copy of the book. Copy identity is immutable
// once appended; copies are flagged WrittenOff or Lost, never removed, so the
// fold keeps the full ownership history visible.
type InventoryItem struct {
	ItemID     ItemIDString
	Tag        string
	Borrowed   bool
	BorrowedBy BorrowerIDString
	Lost       bool
	WrittenOff bool
}

// LoanStatus tracks where a loan stands relative to its due date. The
// transitions are driven by externally timed commands; an extension resets
// the loan to recent.
type LoanStatus string

const (
	LoanStatusRecent           LoanStatus = "Recent"
	LoanStatusShouldReturnSoon LoanStatus = "ShouldReturnSoon"
	LoanStatusOverdue          LoanStatus = "Overdue"
)

// Loan is an active borrow of one copy by one borrower.
type Loan struct {
	LoanID             LoanIDString
	ItemID             ItemIDString
	BorrowerID         BorrowerIDString
	WhenTaken          time.Time
	WhenDue            time.Time
	Status             LoanStatus
	IsAllowedExtension bool
}

// Reservation is one entry of the FIFO reservation queue. A satisfied
// reservation keeps its queue position until the corresponding loan begins or
// the pickup hold expires.
type Reservation struct {
	BorrowerID     BorrowerIDString
	WhenRequested  time.Time
	IsSatisfied    bool
	PickupDeadline time.Time
}

// InventoryState is the fold of one book's event history. It is a value:
// applying an event returns a new state, the old one is never mutated.
type InventoryState struct {
	BookID       BookIDString
	Items        []InventoryItem
	Loans        []Loan
	Reservations []Reservation

	// AvailabilityAnnounced is true while the most recent free-copy situation
	// has already been announced via BookBecameAvailable. It keeps re-delivered
	// events from producing duplicate announcements.
	AvailabilityAnnounced bool

	// Exists is false until the first CopyAppended event; coordinators treat
	// a non-existing inventory as a fatal configuration error.
	Exists bool
}

// ProjectInventory builds the current inventory state by replaying all events
// from one book's history in order.
func ProjectInventory(history DomainEvents) InventoryState {
	s := InventoryState{}

	for _, event := range history {
		s = s.apply(event)
	}

	return s
}

//nolint:gocognit // one case per event type, each trivially small
func (s InventoryState) apply(event DomainEvent) InventoryState {
	switch e := event.(type) {
	case CopyAppended:
		s.BookID = e.BookID
		s.Exists = true
		s.Items = append(copyItems(s.Items), InventoryItem{ItemID: e.ItemID, Tag: e.Tag})
		s.AvailabilityAnnounced = false

	case CopyWrittenOff:
		s.Items = updateItem(s.Items, e.ItemID, func(item InventoryItem) InventoryItem {
			item.WrittenOff = true
			return item
		})
		s.AvailabilityAnnounced = false

	case CopyBorrowed:
		s.Items = updateItem(s.Items, e.ItemID, func(item InventoryItem) InventoryItem {
			item.Borrowed = true
			item.BorrowedBy = e.BorrowerID
			return item
		})
		s.Loans = append(copyLoans(s.Loans), Loan{
			LoanID:             e.LoanID,
			ItemID:             e.ItemID,
			BorrowerID:         e.BorrowerID,
			WhenTaken:          e.OccurredAt,
			WhenDue:            e.WhenDue,
			Status:             LoanStatusRecent,
			IsAllowedExtension: true,
		})
		s.AvailabilityAnnounced = false

	case CopyReturned:
		s.Items = updateItem(s.Items, e.ItemID, func(item InventoryItem) InventoryItem {
			item.Borrowed = false
			item.BorrowedBy = ""
			return item
		})
		s.Loans = removeLoanByItem(s.Loans, e.ItemID)
		s.AvailabilityAnnounced = false

	case CopyReportedLost:
		s.Items = updateItem(s.Items, e.ItemID, func(item InventoryItem) InventoryItem {
			item.Borrowed = false
			item.BorrowedBy = ""
			item.Lost = true
			return item
		})
		s.Loans = removeLoanByItem(s.Loans, e.ItemID)
		s.AvailabilityAnnounced = false

	case ReservationAdded:
		s.Reservations = append(copyReservations(s.Reservations), Reservation{
			BorrowerID:    e.BorrowerID,
			WhenRequested: e.OccurredAt,
		})

	case ReservationCanceled:
		s.Reservations = removeReservation(s.Reservations, e.BorrowerID)
		s.AvailabilityAnnounced = false

	case ReservationPickUpPeriodExpired:
		s.Reservations = removeReservation(s.Reservations, e.BorrowerID)
		s.AvailabilityAnnounced = false

	case BookReadyToPickup:
		s.Reservations = updateReservation(s.Reservations, e.BorrowerID, func(r Reservation) Reservation {
			r.IsSatisfied = true
			r.PickupDeadline = e.PickupDeadline
			return r
		})
		s.AvailabilityAnnounced = false

	case ReservationBecameLoan:
		s.Reservations = removeReservation(s.Reservations, e.BorrowerID)

	case LoanPeriodExtended:
		s.Loans = updateLoanByID(s.Loans, e.LoanID, func(l Loan) Loan {
			l.WhenDue = e.NewDueDate
			l.Status = LoanStatusRecent
			l.IsAllowedExtension = false
			return l
		})

	case LoanBecameShouldReturnSoon:
		s.Loans = updateLoanByID(s.Loans, e.LoanID, func(l Loan) Loan {
			l.Status = LoanStatusShouldReturnSoon
			return l
		})

	case LoanBecameOverdue:
		s.Loans = updateLoanByID(s.Loans, e.LoanID, func(l Loan) Loan {
			l.Status = LoanStatusOverdue
			return l
		})

	case LoansExtensionForbidden:
		s.Loans = setExtensionAllowed(s.Loans, e.BorrowerIDs, false)

	case LoansExtensionAllowed:
		s.Loans = setExtensionAllowed(s.Loans, e.BorrowerIDs, true)

	case BookBecameAvailable:
		s.AvailabilityAnnounced = true

	case OperationFailed:
		// rejected commands do not change state
	}

	return s
}

// ItemByID finds a copy regardless of its flags.
func (s InventoryState) ItemByID(itemID ItemIDString) (InventoryItem, bool) {
	for _, item := range s.Items {
		if item.ItemID == itemID {
			return item, true
		}
	}

	return InventoryItem{}, false
}

// HasActiveItem reports whether the copy exists and is not written off.
func (s InventoryState) HasActiveItem(itemID ItemIDString) bool {
	item, found := s.ItemByID(itemID)
	return found && !item.WrittenOff
}

// AvailableCopyCount counts copies that are free for borrowing right now:
// not borrowed, not lost, not written off.
func (s InventoryState) AvailableCopyCount() int {
	count := 0
	for _, item := range s.Items {
		if !item.Borrowed && !item.Lost && !item.WrittenOff {
			count++
		}
	}

	return count
}

// ActiveHoldCount counts satisfied reservations whose pickup deadline has not
// passed yet. Expired holds no longer block other borrowers (bounded hold).
func (s InventoryState) ActiveHoldCount(now time.Time) int {
	count := 0
	for _, r := range s.Reservations {
		if r.IsSatisfied && r.PickupDeadline.After(now) {
			count++
		}
	}

	return count
}

// VacantCopyCount is the number of free copies not earmarked by an active hold.
func (s InventoryState) VacantCopyCount(now time.Time) int {
	return s.AvailableCopyCount() - s.ActiveHoldCount(now)
}

// LoanByID finds an active loan by its identifier.
func (s InventoryState) LoanByID(loanID LoanIDString) (Loan, bool) {
	for _, loan := range s.Loans {
		if loan.LoanID == loanID {
			return loan, true
		}
	}

	return Loan{}, false
}

// LoanByBorrower finds the borrower's active loan for this book, if any.
func (s InventoryState) LoanByBorrower(borrowerID BorrowerIDString) (Loan, bool) {
	for _, loan := range s.Loans {
		if loan.BorrowerID == borrowerID {
			return loan, true
		}
	}

	return Loan{}, false
}

// ReservationByBorrower finds the borrower's pending reservation, if any.
func (s InventoryState) ReservationByBorrower(borrowerID BorrowerIDString) (Reservation, bool) {
	for _, r := range s.Reservations {
		if r.BorrowerID == borrowerID {
			return r, true
		}
	}

	return Reservation{}, false
}

// NextUnsatisfiedReservation returns the first unsatisfied reservation in
// insertion order. Promotion must follow this order strictly.
func (s InventoryState) NextUnsatisfiedReservation() (Reservation, bool) {
	for _, r := range s.Reservations {
		if !r.IsSatisfied {
			return r, true
		}
	}

	return Reservation{}, false
}

// UnsatisfiedReservationCount counts reservations still waiting for a copy.
func (s InventoryState) UnsatisfiedReservationCount() int {
	count := 0
	for _, r := range s.Reservations {
		if !r.IsSatisfied {
			count++
		}
	}

	return count
}

// ForbiddenLoanCount counts active loans currently forbidden extension.
func (s InventoryState) ForbiddenLoanCount() int {
	count := 0
	for _, loan := range s.Loans {
		if !loan.IsAllowedExtension {
			count++
		}
	}

	return count
}

// AllowedBorrowersOldestFirst lists borrowers of extension-eligible loans in
// loan creation order. The LoanExtensionController forbids from the front of
// this list: first in, first forbidden.
func (s InventoryState) AllowedBorrowersOldestFirst() []BorrowerIDString {
	result := make([]BorrowerIDString, 0)
	for _, loan := range s.Loans {
		if loan.IsAllowedExtension {
			result = append(result, loan.BorrowerID)
		}
	}

	return result
}

// ForbiddenBorrowersNewestFirst lists borrowers of extension-forbidden loans in
// reverse loan creation order. The LoanExtensionController re-allows from the
// front of this list: last forbidden, first restored.
func (s InventoryState) ForbiddenBorrowersNewestFirst() []BorrowerIDString {
	result := make([]BorrowerIDString, 0)
	for i := len(s.Loans) - 1; i >= 0; i-- {
		if !s.Loans[i].IsAllowedExtension {
			result = append(result, s.Loans[i].BorrowerID)
		}
	}

	return result
}

/*
 * Copy-on-write helpers. Each returns a fresh slice so the previous state
 * value stays untouched.
 */

func copyItems(items []InventoryItem) []InventoryItem {
	result := make([]InventoryItem, len(items))
	copy(result, items)
	return result
}

func copyLoans(loans []Loan) []Loan {
	result := make([]Loan, len(loans))
	copy(result, loans)
	return result
}

func copyReservations(reservations []Reservation) []Reservation {
	result := make([]Reservation, len(reservations))
	copy(result, reservations)
	return result
}

func updateItem(items []InventoryItem, itemID ItemIDString, update func(InventoryItem) InventoryItem) []InventoryItem {
	result := copyItems(items)
	for i, item := range result {
		if item.ItemID == itemID {
			result[i] = update(item)
			break
		}
	}

	return result
}

func updateLoanByID(loans []Loan, loanID LoanIDString, update func(Loan) Loan) []Loan {
	result := copyLoans(loans)
	for i, loan := range result {
		if loan.LoanID == loanID {
			result[i] = update(loan)
			break
		}
	}

	return result
}

func setExtensionAllowed(loans []Loan, borrowerIDs []BorrowerIDString, allowed bool) []Loan {
	result := copyLoans(loans)
	for _, borrowerID := range borrowerIDs {
		for i, loan := range result {
			if loan.BorrowerID == borrowerID {
				result[i].IsAllowedExtension = allowed
				break
			}
		}
	}

	return result
}

func removeLoanByItem(loans []Loan, itemID ItemIDString) []Loan {
	result := make([]Loan, 0, len(loans))
	for _, loan := range loans {
		if loan.ItemID != itemID {
			result = append(result, loan)
		}
	}

	return result
}

func updateReservation(
	reservations []Reservation,
	borrowerID BorrowerIDString,
	update func(Reservation) Reservation,
) []Reservation {
	result := copyReservations(reservations)
	for i, r := range result {
		if r.BorrowerID == borrowerID {
			result[i] = update(r)
			break
		}
	}

	return result
}

func removeReservation(reservations []Reservation, borrowerID BorrowerIDString) []Reservation {
	result := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.BorrowerID != borrowerID {
			result = append(result, r)
		}
	}

	return result
}
