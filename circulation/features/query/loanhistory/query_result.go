package loanhistory

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// LoanEntry is one loan of the borrower.
type LoanEntry struct {
	LoanID      core.LoanIDString
	BookID      core.BookIDString
	IssuedBy    core.StaffIDString
	IssuedAt    time.Time
	FromHold    bool
	Returned    bool
	ReturnedAt  time.Time
	ReceivedBy  core.StaffIDString
	DaysOverdue int
	Fine        core.Money
	FinePaid    bool
}

// LoanHistory represents the query result, loans ordered by issue time.
// UnpaidFines sums the fines that were not paid at return.
type LoanHistory struct {
	BorrowerID     core.BorrowerIDString
	Loans          []LoanEntry
	Count          int
	OpenCount      int
	UnpaidFines    core.Money
	SequenceNumber journal.MaxSequenceNumberUint
}
