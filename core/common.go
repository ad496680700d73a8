package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book (inventory aggregate) identifier.
type BookIDString = string

// ItemIDString represents the identifier of one physical copy.
type ItemIDString = string

// BorrowerIDString represents a borrower identifier.
type BorrowerIDString = string

// LoanIDString represents a loan identifier.
type LoanIDString = string

// EventTypeString represents the type identifier of a domain event.
type EventTypeString = string

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// LoanPeriod is the standard lending period for one loan.
const LoanPeriod = 14 * 24 * time.Hour

// PickupPeriod is how long a copy stays on hold for a satisfied reservation.
const PickupPeriod = 2 * 24 * time.Hour

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
