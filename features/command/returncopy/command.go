package returncopy

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "ReturnCopy"
)

// Command represents the intent to return a borrowed copy.
type Command struct {
	BookID     uuid.UUID
	ItemID     uuid.UUID
	BorrowerID uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, itemID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		ItemID:     itemID,
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
