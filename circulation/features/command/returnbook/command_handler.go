package returnbook

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// CommandHandler orchestrates the workflow: Lock -> Lookup -> Check -> Ask -> Record -> Apply -> Tell.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	registry *catalog.Registry
	recorder *shell.EventRecorder
	prompter shell.Prompter

	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for journal appends.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(registry *catalog.Registry, journal shell.Journal, prompter shell.Prompter, opts ...Option) CommandHandler {
	handler := CommandHandler{
		registry: registry,
		prompter: prompter,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	handler.recorder = shell.NewEventRecorder(journal, handler.retryOptions...)

	return handler
}

// Handle returns the book while holding its lock.
// A refused return is recorded and surfaced as an error wrapping core.ErrPreconditionViolation,
// with the loan and the book left unchanged.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	unlock, err := h.registry.LockBook(command.BookID)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}
	defer unlock()

	book, loan, staff, err := h.lookup(command)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	borrower := loan.Borrower
	if !command.BorrowerID.IsZero() {
		if borrower, err = h.registry.Borrower(command.BorrowerID); err != nil {
			return shell.NewErrorResult(shell.RetryMetrics{}), err
		}
	}

	metadata := shell.NewCommandMetadata()

	returnDecision, err := book.DecideReturn(borrower, loan, h.registry.Policy(), command.OccurredAt)
	if err != nil {
		result := DecideFailure(borrower.ID, err, command)

		retryMetrics, recordErr := h.recorder.Record(ctx, book.ID, metadata, result.Event)
		if recordErr != nil {
			return shell.NewErrorResult(retryMetrics), recordErr
		}

		return shell.NewErrorResult(retryMetrics), result.HasError()
	}

	finePaid := false
	if returnDecision.FineOwed() {
		if finePaid, err = h.prompter.PromptYesNo(ctx, returnDecision.Question); err != nil {
			return shell.NewErrorResult(shell.RetryMetrics{}), err
		}
	}

	result := Decide(returnDecision, staff, finePaid, command)

	retryMetrics, err := h.recorder.Record(ctx, book.ID, metadata, result.Event)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if err = book.ApplyReturn(returnDecision, staff, finePaid); err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if err = h.prompter.Display(ctx, summary(book, returnDecision, finePaid)); err != nil {
		return shell.NewSuccessResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) lookup(command Command) (*core.Book, *core.Loan, *core.Staff, error) {
	book, err := h.registry.Book(command.BookID)
	if err != nil {
		return nil, nil, nil, err
	}

	loan, err := h.registry.Loan(command.LoanID)
	if err != nil {
		return nil, nil, nil, err
	}

	staff, err := h.registry.Staff(command.StaffID)
	if err != nil {
		return nil, nil, nil, err
	}

	return book, loan, staff, nil
}

func summary(book *core.Book, decision core.ReturnDecision, finePaid bool) string {
	message := fmt.Sprintf("%q has been returned.", book.Title())

	switch {
	case decision.FineOwed() && finePaid:
		message += fmt.Sprintf(" The fine of %s has been paid.", decision.Fine)
	case decision.FineOwed():
		message += fmt.Sprintf(
			" The fine of %s has been added to the outstanding balance of %s, now %s.",
			decision.Fine,
			decision.Loan.Borrower.Name,
			decision.Loan.Borrower.OutstandingFine(),
		)
	}

	if book.Status() == core.StatusHeld {
		message += " It is held for the earliest hold request."
	}

	return message
}
