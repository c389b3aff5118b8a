package shell

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// Command represents the contract for all circulation command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands.
// Handlers orchestrate the whole workflow: catalog lookup, decision, user questions,
// journaling and applying the state change.
// They are meant to be wrapped with observable.CommandWrapper.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreQueryHandler defines the contract for components that process queries.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// QueriesEvents is the read side of the circulation journal.
type QueriesEvents interface {
	Query(ctx context.Context, filter journal.Filter) (
		journal.StorableEvents,
		journal.MaxSequenceNumberUint,
		error,
	)
}

// AppendsEvents is the write side of the circulation journal.
type AppendsEvents interface {
	Append(
		ctx context.Context,
		filter journal.Filter,
		expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
		storableEvent journal.StorableEvent,
		additionalEvents ...journal.StorableEvent,
	) error
}

// Journal is implemented by memengine.Engine and postgresengine.Engine.
type Journal interface {
	QueriesEvents
	AppendsEvents
}

// Prompter is the user-interaction surface. Handlers call it at the points where
// a circulation decision needs an answer or has something to tell.
// Calls block until the user answers or ctx is done.
type Prompter interface {
	PromptYesNo(ctx context.Context, message string) (bool, error)
	PromptText(ctx context.Context, message string) (string, error)
	Display(ctx context.Context, message string) error
}
