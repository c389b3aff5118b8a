package makeholdrequest

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// CommandHandler orchestrates the workflow: Lock -> Lookup -> Decide -> Record -> Apply -> Tell.
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

// Handle places the hold request while holding the book's lock.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	unlock, err := h.registry.LockBook(command.BookID)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}
	defer unlock()

	book, err := h.registry.Book(command.BookID)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	borrower, err := h.registry.Borrower(command.BorrowerID)
	if err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	result, retryMetrics, err := Place(ctx, h.recorder, h.prompter, book, borrower, command, shell.NewCommandMetadata())
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return HandlerResultFor(result, retryMetrics), nil
}

// Place decides, records and applies a hold request and tells the borrower the outcome.
// The caller must hold the book's lock.
//
// A precondition violation is recorded and returned as the error.
func Place(
	ctx context.Context,
	recorder *shell.EventRecorder,
	prompter shell.Prompter,
	book *core.Book,
	borrower *core.Borrower,
	command Command,
	metadata shell.EventMetadata,
) (core.DecisionResult, shell.RetryMetrics, error) {
	result := Decide(book, borrower, command)

	var retryMetrics shell.RetryMetrics
	if result.HasEventToAppend() {
		var err error
		if retryMetrics, err = recorder.Record(ctx, book.ID, metadata, result.Event); err != nil {
			return result, retryMetrics, err
		}
	}

	if err := result.HasError(); err != nil {
		return result, retryMetrics, err
	}

	if result.IsSuccess() {
		if _, _, err := book.MakeHoldRequest(borrower, command.OccurredAt); err != nil {
			return result, retryMetrics, err
		}
	}

	if err := prompter.Display(ctx, MessageFor(result)); err != nil {
		return result, retryMetrics, err
	}

	return result, retryMetrics, nil
}

// HandlerResultFor maps a hold decision to the handler result reported to the wrappers.
func HandlerResultFor(result core.DecisionResult, retryMetrics shell.RetryMetrics) shell.HandlerResult {
	switch {
	case result.IsIdempotent():
		return shell.NewIdempotentResult(retryMetrics)
	case result.IsRejected():
		return shell.NewRejectedResult(retryMetrics)
	default:
		return shell.NewSuccessResult(retryMetrics)
	}
}
