package issuebook

import (
	"context"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/features/command/makeholdrequest"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

const dueDateLayout = "2006-01-02"

// CommandHandler orchestrates the workflow:
// Lock -> Lookup -> Purge expired holds -> Decide -> Record -> Ask -> Apply -> Tell.
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

// Handle issues the book, offers a hold request or tells the borrower to wait,
// all while holding the book's lock.
//
// The outcome is success when a loan was issued or a hold request placed, and rejected
// when the borrower has to wait or declines the hold request.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	unlock, err := h.registry.LockBook(command.BookID)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}
	defer unlock()

	book, borrower, staff, err := h.lookup(command)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	metadata := shell.NewCommandMetadata()

	retryMetrics, err := h.purgeExpiredHoldRequests(ctx, book, command.OccurredAt, metadata)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	decision, err := book.DecideIssue(borrower)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	var loan *core.Loan
	if decision.IssuesLoan() {
		loan = h.registry.NewLoan(borrower, book, staff, command.OccurredAt)
	}

	result := Decide(decision, loan, command)

	recordMetrics, err := h.recorder.Record(ctx, book.ID, metadata.Next(), result.Event)
	retryMetrics = retryMetrics.Merge(recordMetrics)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if err = result.HasError(); err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	switch decision.Outcome {
	case core.IssueNow, core.IssueToEarliestHolder:
		return h.issue(ctx, decision, loan, command, metadata, retryMetrics)
	case core.IssueOfferHold:
		return h.offerHold(ctx, decision, command, metadata, retryMetrics)
	default:
		if err = h.prompter.Display(ctx, decision.Message); err != nil {
			return shell.NewErrorResult(retryMetrics), err
		}

		return shell.NewRejectedResult(retryMetrics), nil
	}
}

func (h CommandHandler) lookup(command Command) (*core.Book, *core.Borrower, *core.Staff, error) {
	book, err := h.registry.Book(command.BookID)
	if err != nil {
		return nil, nil, nil, err
	}

	borrower, err := h.registry.Borrower(command.BorrowerID)
	if err != nil {
		return nil, nil, nil, err
	}

	staff, err := h.registry.Staff(command.StaffID)
	if err != nil {
		return nil, nil, nil, err
	}

	return book, borrower, staff, nil
}

// purgeExpiredHoldRequests records and removes the hold requests that expired at now.
func (h CommandHandler) purgeExpiredHoldRequests(
	ctx context.Context,
	book *core.Book,
	now time.Time,
	metadata shell.EventMetadata,
) (shell.RetryMetrics, error) {
	expired := book.ExpiredHoldRequests(h.registry.Policy(), now)
	if len(expired) == 0 {
		return shell.RetryMetrics{}, nil
	}

	events := make(core.DomainEvents, 0, len(expired))
	for _, hr := range expired {
		events = append(events, core.BuildHoldRequestExpired(hr, now))
	}

	retryMetrics, err := h.recorder.Record(ctx, book.ID, metadata, events...)
	if err != nil {
		return retryMetrics, err
	}

	for _, hr := range expired {
		book.CancelHoldRequest(hr)
	}

	return retryMetrics, nil
}

func (h CommandHandler) issue(
	ctx context.Context,
	decision core.IssueDecision,
	loan *core.Loan,
	command Command,
	metadata shell.EventMetadata,
	retryMetrics shell.RetryMetrics,
) (shell.HandlerResult, error) {
	book := decision.Book

	if err := book.ApplyIssue(decision, loan); err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	h.registry.RecordLoan(loan)

	dueAt := loan.IssuedAt.AddDate(0, 0, h.registry.Policy().LoanPeriodDays)
	confirmation := fmt.Sprintf(
		"%q has been issued to %s (loan %s), due back on %s.",
		book.Title(),
		decision.Borrower.Name,
		loan.ID,
		dueAt.Format(dueDateLayout),
	)

	if err := h.prompter.Display(ctx, confirmation); err != nil {
		return shell.NewSuccessResult(retryMetrics), err
	}

	holdForIssuer, err := h.prompter.PromptYesNo(ctx, core.HoldForIssuerQuestion)
	if err != nil {
		return shell.NewSuccessResult(retryMetrics), err
	}

	if holdForIssuer {
		_, holdMetrics, placeErr := h.placeHold(ctx, decision, command, metadata)
		retryMetrics = retryMetrics.Merge(holdMetrics)

		if placeErr != nil {
			return shell.NewSuccessResult(retryMetrics), placeErr
		}
	}

	return shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) offerHold(
	ctx context.Context,
	decision core.IssueDecision,
	command Command,
	metadata shell.EventMetadata,
	retryMetrics shell.RetryMetrics,
) (shell.HandlerResult, error) {
	wantsHold, err := h.prompter.PromptYesNo(ctx, decision.Question)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if !wantsHold {
		return shell.NewRejectedResult(retryMetrics), nil
	}

	result, holdMetrics, err := h.placeHold(ctx, decision, command, metadata)
	retryMetrics = retryMetrics.Merge(holdMetrics)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if result.IsSuccess() {
		return shell.NewSuccessResult(retryMetrics), nil
	}

	return shell.NewRejectedResult(retryMetrics), nil
}

// placeHold runs the hold request step for the borrower of decision under the lock already held.
func (h CommandHandler) placeHold(
	ctx context.Context,
	decision core.IssueDecision,
	command Command,
	metadata shell.EventMetadata,
) (core.DecisionResult, shell.RetryMetrics, error) {
	return makeholdrequest.Place(
		ctx,
		h.recorder,
		h.prompter,
		decision.Book,
		decision.Borrower,
		makeholdrequest.BuildCommand(command.BookID, command.BorrowerID, command.OccurredAt),
		metadata.Next(),
	)
}
