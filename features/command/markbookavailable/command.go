package markbookavailable

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "MarkBookAsAvailable"
)

// Command represents the intent to announce that the book has a copy free for
// general borrowing. It is issued by the reservation queue reactor when a copy
// frees up and nobody is waiting.
type Command struct {
	BookID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
