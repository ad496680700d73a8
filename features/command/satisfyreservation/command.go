package satisfyreservation

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "SatisfyReservation"
)

// Command represents the intent to earmark a free copy for the borrower's
// reservation. It is issued by the reservation queue reactor, never by users.
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
