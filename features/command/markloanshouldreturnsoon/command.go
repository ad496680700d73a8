package markloanshouldreturnsoon

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "MarkLoanShouldReturnSoon"
)

// Command models the firing of a return-reminder timer: the loan approaches
// its due date. The timer mechanism itself lives outside this module; only
// the state transition is modeled here.
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
