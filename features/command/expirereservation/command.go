package expirereservation

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "MarkReservationExpired"
)

// Command models the firing of a pickup-hold timer: the borrower's satisfied
// reservation was not claimed within the pickup period. The timer mechanism
// itself lives outside this module; only the state transition is modeled here.
type Command struct {
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
