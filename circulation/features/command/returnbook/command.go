package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return a loaned book, received by a staff member.
// BorrowerID names the borrower who brings the book back; the zero ID means the loan's borrower.
type Command struct {
	BookID     core.ID
	LoanID     core.ID
	StaffID    core.ID
	BorrowerID core.ID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command for a return by the loan's borrower.
func BuildCommand(bookID, loanID, staffID core.ID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		LoanID:     loanID,
		StaffID:    staffID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// BuildCommandForBorrower creates a new Command for a return by the given borrower.
func BuildCommandForBorrower(bookID, loanID, staffID, borrowerID core.ID, occurredAt time.Time) Command {
	command := BuildCommand(bookID, loanID, staffID, occurredAt)
	command.BorrowerID = borrowerID

	return command
}
