package allowloansextension

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "AllowLoansExtension"
)

// Command represents the administrative intent to restore the extension
// permission of the named borrowers' loans. Issued only by the loan extension
// controller, never by users.
type Command struct {
	BookID      uuid.UUID
	BorrowerIDs []core.BorrowerIDString
	OccurredAt  core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, borrowerIDs []core.BorrowerIDString, occurredAt time.Time) Command {
	return Command{
		BookID:      bookID,
		BorrowerIDs: borrowerIDs,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}
