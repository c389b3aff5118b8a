package core

import (
	"fmt"
	"time"
)

// ReturnDecision describes a return: when it happens and which fine is owed.
// Question is set when a fine is owed.
type ReturnDecision struct {
	Loan        *Loan
	ReturnedAt  time.Time
	DaysOverdue int
	Fine        Money
	Question    string
}

// FineOwed reports whether the return is late enough to owe a fine.
func (d ReturnDecision) FineOwed() bool {
	return d.Fine > 0
}

// DecideReturn checks that borrower may return loan of this book at now and computes the fine.
// It does not change anything.
func (b *Book) DecideReturn(borrower *Borrower, loan *Loan, policy LendingPolicy, now time.Time) (ReturnDecision, error) {
	const op = "return book"

	switch {
	case borrower == nil:
		return ReturnDecision{}, NewOpError(op, ErrInvalidArgument, "borrower is missing")
	case loan == nil:
		return ReturnDecision{}, NewOpError(op, ErrInvalidArgument, "loan is missing")
	case loan.Book != b:
		return ReturnDecision{}, NewOpError(op, ErrPreconditionViolation, "loan %s is not for book %s", loan.ID, b.ID)
	case loan.IsReturned():
		return ReturnDecision{}, NewOpError(op, ErrPreconditionViolation, "loan %s has already been returned", loan.ID)
	case loan.Borrower != borrower:
		return ReturnDecision{}, NewOpError(op, ErrPreconditionViolation, "wrong borrower for this loan")
	}

	daysOverdue, fine := policy.FineFor(loan.IssuedAt, now)

	decision := ReturnDecision{
		Loan:        loan,
		ReturnedAt:  now,
		DaysOverdue: daysOverdue,
		Fine:        fine,
	}

	if decision.FineOwed() {
		decision.Question = fmt.Sprintf(
			"The book is %d day(s) overdue and a fine of %s is owed. Pay the fine now?",
			daysOverdue,
			fine,
		)
	}

	return decision, nil
}

// ApplyReturn closes the loan and frees the book, or keeps it held if hold requests are pending.
// finePaid only matters when a fine is owed; an unpaid fine is added to the borrower's balance.
// There is no automatic issue to the next holder.
func (b *Book) ApplyReturn(decision ReturnDecision, receivedBy *Staff, finePaid bool) error {
	const op = "apply return"

	loan := decision.Loan
	if loan == nil {
		return NewOpError(op, ErrInvalidArgument, "loan is missing")
	}

	if loan.IsReturned() || loan != b.currentLoan {
		return NewOpError(op, ErrPreconditionViolation, "loan %s is not open for book %s", loan.ID, b.ID)
	}

	loan.ReturnedAt = decision.ReturnedAt
	loan.ReceivedBy = receivedBy
	loan.Fine = decision.Fine

	if decision.FineOwed() {
		loan.FinePaid = finePaid
		if !finePaid {
			loan.Borrower.addFine(decision.Fine)
		}
	}

	loan.Borrower.removeLoan(loan)
	b.currentLoan = nil

	b.status = StatusAvailable
	if !b.queue.IsEmpty() {
		b.status = StatusHeld
	}

	return nil
}
