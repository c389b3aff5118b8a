package makeholdrequest

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "MakeHoldRequest"
)

// Command represents the intent of a borrower to wait for an issued book.
type Command struct {
	BookID     core.ID
	BorrowerID core.ID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID, borrowerID core.ID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
