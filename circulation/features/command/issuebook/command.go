package issuebook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "IssueBook"
)

// Command represents the intent to issue a book to a borrower, handled by a staff member.
type Command struct {
	BookID     core.ID
	BorrowerID core.ID
	StaffID    core.ID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID, borrowerID, staffID core.ID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		BorrowerID: borrowerID,
		StaffID:    staffID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
