package core

import (
	"time"
)

// Loan records a book being issued to a borrower.
// Only ReturnedAt, ReceivedBy, Fine and FinePaid change after creation, once, on return.
type Loan struct {
	ID         ID
	Borrower   *Borrower
	Book       *Book
	IssuedBy   *Staff
	ReceivedBy *Staff
	IssuedAt   time.Time
	ReturnedAt time.Time
	Fine       Money
	FinePaid   bool
}

// NewLoan creates an open loan with an ID from ids.
func NewLoan(ids *IDAllocator, borrower *Borrower, book *Book, issuedBy *Staff, issuedAt time.Time) *Loan {
	return &Loan{
		ID:       ids.Next(KindLoan),
		Borrower: borrower,
		Book:     book,
		IssuedBy: issuedBy,
		IssuedAt: issuedAt,
	}
}

// IsReturned reports whether the book of this loan has been returned.
func (l *Loan) IsReturned() bool {
	return !l.ReturnedAt.IsZero()
}
