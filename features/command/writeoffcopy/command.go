package writeoffcopy

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "WriteOffCopy"
)

// Command represents the intent to write a damaged or retired copy off the inventory.
type Command struct {
	BookID     uuid.UUID
	ItemID     uuid.UUID
	Reason     string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, itemID uuid.UUID, reason string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		ItemID:     itemID,
		Reason:     reason,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
