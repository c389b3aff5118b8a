package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation/core"
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// ErrRecordingEventsFailed is returned when events could not be written to the journal.
var ErrRecordingEventsFailed = errors.New("recording events in the journal failed")

// EventRecorder writes the events of a circulation operation to the journal.
//
// Every operation concerns one book, so the events are appended to that book's stream,
// guarded by the stream's max sequence number. A concurrency conflict can only be caused
// by another process sharing the journal and is retried with exponential backoff.
type EventRecorder struct {
	journal      Journal
	retryOptions []RetryOption
}

// NewEventRecorder creates an EventRecorder. retryOptions are passed to RetryWithExponentialBackoff.
func NewEventRecorder(journal Journal, retryOptions ...RetryOption) *EventRecorder {
	return &EventRecorder{journal: journal, retryOptions: retryOptions}
}

// BookStreamFilter selects all events of one book.
func BookStreamFilter(bookID core.ID) journal.Filter {
	return journal.BuildEventFilter().
		Matching().
		AnyPredicateOf(journal.P("BookID", bookID.String())).
		Finalize()
}

// Record appends events to the stream of bookID. It does nothing without events.
func (r *EventRecorder) Record(
	ctx context.Context,
	bookID core.ID,
	metadata EventMetadata,
	events ...core.DomainEvent,
) (RetryMetrics, error) {
	if len(events) == 0 {
		return RetryMetrics{LastErrorType: getErrorType(nil)}, nil
	}

	storableEvents, err := StorableEventsFrom(events, metadata)
	if err != nil {
		return RetryMetrics{}, err
	}

	filter := BookStreamFilter(bookID)

	metrics, err := RetryWithExponentialBackoff(ctx, func(ctx context.Context) error {
		_, maxSequenceNumber, queryErr := r.journal.Query(ctx, filter)
		if queryErr != nil {
			return queryErr
		}

		return r.journal.Append(ctx, filter, maxSequenceNumber, storableEvents[0], storableEvents[1:]...)
	}, r.retryOptions...)

	if err != nil {
		return metrics, errors.Join(ErrRecordingEventsFailed, err)
	}

	return metrics, nil
}
