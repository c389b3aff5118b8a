// Package memengine is the in-memory journal engine, the default for a single librarian session.
//
// It honors the same contract as the Postgres engine: filters select a dynamic event stream,
// and Append only succeeds while that stream's max sequence number is unchanged.
package memengine

import (
	"context"
	"slices"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

const (
	logMsgQueryCompleted      = "journal operation: query completed"
	logMsgEventsAppended      = "journal operation: events appended"
	logMsgConcurrencyConflict = "journal operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

type sequencedEvent struct {
	sequenceNumber journal.MaxSequenceNumberUint
	event          journal.StorableEvent
}

// Engine keeps all events in a slice ordered by sequence number.
type Engine struct {
	mu     sync.RWMutex
	events []sequencedEvent
	logger journal.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Info level reports appends, queries and conflicts.
func WithLogger(logger journal.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an empty Engine.
func NewEngine(options ...Option) *Engine {
	e := &Engine{}

	for _, option := range options {
		option(e)
	}

	return e
}

// Query returns the events matching filter in sequence order, together with the highest
// sequence number among them.
func (e *Engine) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	stream := make(journal.StorableEvents, 0)
	maxSequenceNumber := journal.MaxSequenceNumberUint(0)

	for _, se := range e.events {
		if !matches(filter, se.event) {
			continue
		}

		stream = append(stream, se.event)
		maxSequenceNumber = se.sequenceNumber
	}

	e.log(logMsgQueryCompleted, logAttrEventCount, len(stream))

	return stream, maxSequenceNumber, nil
}

// Append adds the events atomically if the stream selected by filter still ends at
// expectedMaxSequenceNumber. Otherwise nothing is appended and journal.ErrConcurrencyConflict is returned.
func (e *Engine) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSequenceNumber journal.MaxSequenceNumberUint,
	event journal.StorableEvent,
	additionalEvents ...journal.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	actual := e.maxSequenceNumberFor(filter)
	if actual != expectedMaxSequenceNumber {
		e.log(logMsgConcurrencyConflict, logAttrExpectedSequence, expectedMaxSequenceNumber, logAttrActualSequence, actual)

		return journal.ErrConcurrencyConflict
	}

	allEvents := append(journal.StorableEvents{event}, additionalEvents...)
	for _, ev := range allEvents {
		e.events = append(e.events, sequencedEvent{
			sequenceNumber: journal.MaxSequenceNumberUint(len(e.events) + 1),
			event:          ev,
		})
	}

	e.log(logMsgEventsAppended, logAttrEventCount, len(allEvents))

	return nil
}

// Len returns the number of events in the journal.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.events)
}

func (e *Engine) maxSequenceNumberFor(filter journal.Filter) journal.MaxSequenceNumberUint {
	for i := len(e.events) - 1; i >= 0; i-- {
		if matches(filter, e.events[i].event) {
			return e.events[i].sequenceNumber
		}
	}

	return 0
}

func (e *Engine) log(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func matches(filter journal.Filter, event journal.StorableEvent) bool {
	if !withinTimeRange(filter.OccurredFrom(), filter.OccurredUntil(), event.OccurredAt) {
		return false
	}

	if len(filter.Items()) == 0 {
		return true
	}

	return slices.ContainsFunc(filter.Items(), func(item journal.FilterItem) bool {
		return matchesItem(item, event)
	})
}

func withinTimeRange(from, until, occurredAt time.Time) bool {
	if !from.IsZero() && occurredAt.Before(from) {
		return false
	}

	if !until.IsZero() && occurredAt.After(until) {
		return false
	}

	return true
}

func matchesItem(item journal.FilterItem, event journal.StorableEvent) bool {
	if len(item.EventTypes()) > 0 && !slices.Contains(item.EventTypes(), event.EventType) {
		return false
	}

	if len(item.Predicates()) == 0 {
		return true
	}

	holds := func(p journal.FilterPredicate) bool {
		value := jsoniter.ConfigFastest.Get(event.PayloadJSON, p.Key())

		return value.ValueType() == jsoniter.StringValue && value.ToString() == p.Val()
	}

	if item.AllPredicatesMustMatch() {
		for _, p := range item.Predicates() {
			if !holds(p) {
				return false
			}
		}

		return true
	}

	return slices.ContainsFunc(item.Predicates(), holds)
}
