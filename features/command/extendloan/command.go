package extendloan

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "ExtendLoan"
)

// Command represents the intent to extend an active loan by the standard loan period.
type Command struct {
	BookID     uuid.UUID
	LoanID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, loanID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		LoanID:     loanID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
