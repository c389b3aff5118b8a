package changebookinfo

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation/catalog"
	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
)

// MessageUpdated is displayed after the book's information changed.
const MessageUpdated = "The book information has been updated."

// CommandHandler orchestrates the workflow: Lock -> Lookup -> Decide -> Record -> Apply -> Tell.
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

// Handle applies the supplied fields while holding the book's lock.
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

	result := Decide(book, command)
	if !result.HasEventToAppend() {
		return shell.NewIdempotentResult(shell.RetryMetrics{}), nil
	}

	retryMetrics, err := h.recorder.Record(ctx, book.ID, shell.NewCommandMetadata(), result.Event)
	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	book.ChangeInfo(command.Title, command.Subject, command.Author)

	if err = h.prompter.Display(ctx, MessageUpdated); err != nil {
		return shell.NewSuccessResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics), nil
}
