package core

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in one book's inventory.
type DomainEvent interface {
	// IsEventType returns the string identifier for this event type.
	IsEventType() string

	// AffectsBook returns the identifier of the book's inventory this event belongs to.
	AffectsBook() BookIDString

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// IsErrorEvent returns true if this event represents an error or failure condition.
	IsErrorEvent() bool
}
