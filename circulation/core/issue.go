package core

const (
	// WaitMessage is shown to a borrower who is not first in line for a book with pending hold requests.
	WaitMessage = "Sorry some other users have requested for this book earlier than you. " +
		"So you have to wait until their hold requests are processed."

	// StillOnLoanMessage is shown to the earliest holder while the book is still on loan to someone else.
	StillOnLoanMessage = "This book is still on loan. Your hold request is first in line, " +
		"so you can issue it as soon as it has been returned."

	// PlaceHoldQuestion is asked when the book is issued and nobody waits for it yet.
	PlaceHoldQuestion = "This book is already issued. Do you want to place a hold request for it?"

	// HoldForIssuerQuestion is asked right after a book has been issued.
	HoldForIssuerQuestion = "Do you want to hold this book for the borrower who is currently issuing it?"
)

// IssueOutcome is the kind of an IssueDecision.
type IssueOutcome int

const (
	// IssueNow issues an available book.
	IssueNow IssueOutcome = iota

	// IssueOfferHold offers the borrower a hold request on an issued book nobody waits for.
	IssueOfferHold

	// IssueToEarliestHolder issues a held book to the borrower at the head of its queue.
	IssueToEarliestHolder

	// IssueMustWait refuses the issue because others are entitled to the book first.
	IssueMustWait
)

func (o IssueOutcome) String() string {
	switch o {
	case IssueNow:
		return "issue_now"
	case IssueOfferHold:
		return "offer_hold"
	case IssueToEarliestHolder:
		return "issue_to_earliest_holder"
	case IssueMustWait:
		return "must_wait"
	default:
		return "unknown"
	}
}

// IssueDecision describes what an issue attempt leads to.
// Question is set for IssueOfferHold, Message for IssueMustWait.
type IssueDecision struct {
	Outcome  IssueOutcome
	Book     *Book
	Borrower *Borrower
	Question string
	Message  string
}

// IssuesLoan reports whether the decision creates a loan.
func (d IssueDecision) IssuesLoan() bool {
	return d.Outcome == IssueNow || d.Outcome == IssueToEarliestHolder
}

// DecideIssue decides what happens when borrower asks for this book. It does not change anything.
//
//   - available: issue now
//   - issued, nobody waiting: offer a hold request
//   - held, borrower first in line: issue to the earliest holder
//   - otherwise: the borrower has to wait
func (b *Book) DecideIssue(borrower *Borrower) (IssueDecision, error) {
	if borrower == nil {
		return IssueDecision{}, NewOpError("issue book", ErrInvalidArgument, "borrower is missing")
	}

	decision := IssueDecision{Book: b, Borrower: borrower}

	if b.status == StatusAvailable {
		decision.Outcome = IssueNow
		return decision, nil
	}

	head, ok := b.queue.Peek()
	if !ok {
		decision.Outcome = IssueOfferHold
		decision.Question = PlaceHoldQuestion

		return decision, nil
	}

	if head.Borrower != borrower {
		decision.Outcome = IssueMustWait
		decision.Message = WaitMessage

		return decision, nil
	}

	if b.status == StatusIssued {
		decision.Outcome = IssueMustWait
		decision.Message = StillOnLoanMessage

		return decision, nil
	}

	decision.Outcome = IssueToEarliestHolder

	return decision, nil
}

// ApplyIssue performs a decision that issues a loan.
// For IssueToEarliestHolder the head of the queue is serviced first.
// A decision that no longer matches the book's state fails with ErrPreconditionViolation.
func (b *Book) ApplyIssue(decision IssueDecision, loan *Loan) error {
	const op = "apply issue"

	if !decision.IssuesLoan() {
		return NewOpError(op, ErrPreconditionViolation, "decision %s does not issue a loan", decision.Outcome)
	}

	if loan == nil || loan.Book != b || loan.Borrower != decision.Borrower || decision.Book != b {
		return NewOpError(op, ErrInvalidArgument, "loan does not match the decision")
	}

	switch decision.Outcome {
	case IssueNow:
		if b.status != StatusAvailable {
			return NewOpError(op, ErrPreconditionViolation, "book %s is no longer available", b.ID)
		}
	case IssueToEarliestHolder:
		head, ok := b.queue.Peek()
		if b.status != StatusHeld || !ok || head.Borrower != decision.Borrower {
			return NewOpError(op, ErrPreconditionViolation, "borrower %s is no longer first in line", decision.Borrower.ID)
		}

		b.queue.Dequeue()
		head.Borrower.removeHoldRequest(head)
	}

	decision.Borrower.addLoan(loan)
	b.currentLoan = loan
	b.status = StatusIssued

	return nil
}
