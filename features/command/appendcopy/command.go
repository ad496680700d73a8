package appendcopy

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "AppendCopy"
)

// Command represents the intent to append a new physical copy to a book's inventory.
type Command struct {
	BookID     uuid.UUID
	ItemID     uuid.UUID
	Tag        string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, itemID uuid.UUID, tag string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		ItemID:     itemID,
		Tag:        tag,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
