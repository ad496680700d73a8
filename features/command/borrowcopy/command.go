package borrowcopy

import (
	"time"

	"github.com/google/uuid"

	"exlibris/core"
)

const (
	commandType = "BorrowCopy"
)

// Command represents the intent to borrow one copy of a book.
// The loan identity is generated up front so that retries of the same command
// instance stay idempotent.
type Command struct {
	BookID     uuid.UUID
	ItemID     uuid.UUID
	LoanID     uuid.UUID
	BorrowerID uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with a fresh loan identity.
func BuildCommand(bookID uuid.UUID, itemID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		ItemID:     itemID,
		LoanID:     uuid.New(),
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
