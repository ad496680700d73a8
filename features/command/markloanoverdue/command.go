package markloanoverdue

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "MarkLoanOverdue"
)

// Command models the firing of a due-date timer: the loan's due date passed
// without a return. The timer mechanism itself lives outside this module;
// only the state transition is modeled here.
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
