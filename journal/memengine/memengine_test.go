package memengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/memengine"
)

func Test_Engine_Query_ReturnsMatchingEventsInOrder(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	fakeClock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	appendUnconditionally(t, engine, givenEvent(t, "BookIssuedToBorrower", `{"BookID": "1", "BorrowerID": "10"}`, fakeClock))
	appendUnconditionally(t, engine, givenEvent(t, "BookIssuedToBorrower", `{"BookID": "2", "BorrowerID": "10"}`, fakeClock.Add(time.Hour)))
	appendUnconditionally(t, engine, givenEvent(t, "BookReturnedByBorrower", `{"BookID": "1", "BorrowerID": "10"}`, fakeClock.Add(2*time.Hour)))

	filter := journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssuedToBorrower", "BookReturnedByBorrower").
		AndAnyPredicateOf(journal.P("BookID", "1")).
		Finalize()

	// act
	events, maxSeq, err := engine.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "BookIssuedToBorrower", events[0].EventType)
	assert.Equal(t, "BookReturnedByBorrower", events[1].EventType)
	assert.Equal(t, uint(3), maxSeq)
}

func Test_Engine_Query_AllPredicatesMustMatch(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	now := time.Now()

	appendUnconditionally(t, engine, givenEvent(t, "HoldRequestPlaced", `{"BookID": "1", "BorrowerID": "10"}`, now))
	appendUnconditionally(t, engine, givenEvent(t, "HoldRequestPlaced", `{"BookID": "1", "BorrowerID": "11"}`, now))

	filter := journal.BuildEventFilter().
		Matching().
		AllPredicatesOf(journal.P("BookID", "1"), journal.P("BorrowerID", "11")).
		Finalize()

	// act
	events, maxSeq, err := engine.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, uint(2), maxSeq)
}

func Test_Engine_Query_PredicatesOnlyMatchStringValues(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()

	appendUnconditionally(t, engine, givenEvent(t, "BookReturnedByBorrower", `{"BookID": 1}`, time.Now()))

	filter := journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "1")).Finalize()

	// act
	events, _, err := engine.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	assert.Empty(t, events)
}

func Test_Engine_Query_RespectsTimeRange(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	fakeClock := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	appendUnconditionally(t, engine, givenEvent(t, "BookInfoChanged", `{"BookID": "1"}`, fakeClock))
	appendUnconditionally(t, engine, givenEvent(t, "BookInfoChanged", `{"BookID": "1"}`, fakeClock.Add(48*time.Hour)))

	filter := journal.BuildEventFilter().
		OccurredFrom(fakeClock.Add(time.Hour)).
		MatchingAnyEvent()

	// act
	events, _, err := engine.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fakeClock.Add(48*time.Hour), events[0].OccurredAt)
}

func Test_Engine_Append_DetectsConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	now := time.Now()

	filter := journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "1")).Finalize()
	_, staleMaxSeq, err := engine.Query(ctx, filter)
	require.NoError(t, err)

	appendUnconditionally(t, engine, givenEvent(t, "HoldRequestPlaced", `{"BookID": "1"}`, now))

	// act
	err = engine.Append(ctx, filter, staleMaxSeq, givenEvent(t, "BookIssuedToBorrower", `{"BookID": "1"}`, now))

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.Equal(t, 1, engine.Len())
}

func Test_Engine_Append_UnrelatedStreamsDoNotConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memengine.NewEngine()
	now := time.Now()

	bookOne := journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "1")).Finalize()
	_, maxSeq, err := engine.Query(ctx, bookOne)
	require.NoError(t, err)

	appendUnconditionally(t, engine, givenEvent(t, "HoldRequestPlaced", `{"BookID": "2"}`, now))

	// act
	err = engine.Append(
		ctx,
		bookOne,
		maxSeq,
		givenEvent(t, "BookIssuedToBorrower", `{"BookID": "1"}`, now),
		givenEvent(t, "HoldRequestPlaced", `{"BookID": "1"}`, now),
	)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, engine.Len())
}

func Test_Engine_Query_CanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, _, err := memengine.NewEngine().Query(ctx, journal.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func givenEvent(t *testing.T, eventType string, payload string, occurredAt time.Time) journal.StorableEvent {
	t.Helper()

	event, err := journal.BuildStorableEventWithEmptyMetadata(eventType, occurredAt, []byte(payload))
	require.NoError(t, err)

	return event
}

func appendUnconditionally(t *testing.T, engine *memengine.Engine, event journal.StorableEvent) {
	t.Helper()

	filter := journal.BuildEventFilter().MatchingAnyEvent()
	_, maxSeq, err := engine.Query(context.Background(), filter)
	require.NoError(t, err)

	require.NoError(t, engine.Append(context.Background(), filter, maxSeq, event))
}
