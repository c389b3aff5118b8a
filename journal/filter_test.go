package journal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

//nolint:funlen
func Test_FilterBuilder_ValidCombinations(t *testing.T) {
	from := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	until := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	tests := []struct {
		name     string
		build    func() journal.Filter
		validate func(t *testing.T, f journal.Filter)
	}{
		{
			name: "matching_any_event_creates_empty_filter",
			build: func() journal.Filter {
				return journal.BuildEventFilter().MatchingAnyEvent()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Empty(t, f.Items())
				assert.True(t, f.OccurredFrom().IsZero())
				assert.True(t, f.OccurredUntil().IsZero())
			},
		},
		{
			name: "time_range_without_items",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					OccurredFrom(from).
					OccurredUntil(until).
					MatchingAnyEvent()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Empty(t, f.Items())
				assert.Equal(t, from, f.OccurredFrom())
				assert.Equal(t, until, f.OccurredUntil())
			},
		},
		{
			name: "single_event_type",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookIssuedToBorrower").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Len(t, f.Items(), 1)
				assert.Equal(t, []string{"BookIssuedToBorrower"}, f.Items()[0].EventTypes())
				assert.Empty(t, f.Items()[0].Predicates())
			},
		},
		{
			name: "event_types_are_sanitized",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("HoldRequestPlaced", "", "BookIssuedToBorrower", "HoldRequestPlaced").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Equal(t, []string{"BookIssuedToBorrower", "HoldRequestPlaced"}, f.Items()[0].EventTypes())
			},
		},
		{
			name: "event_types_and_any_predicates",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyEventTypeOf("BookIssuedToBorrower").
					AndAnyPredicateOf(journal.P("BorrowerID", "7"), journal.P("BookID", "3")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				item := f.Items()[0]
				assert.Equal(t, []journal.FilterPredicate{journal.P("BookID", "3"), journal.P("BorrowerID", "7")}, item.Predicates())
				assert.False(t, item.AllPredicatesMustMatch())
			},
		},
		{
			name: "all_predicates_then_event_types",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AllPredicatesOf(journal.P("BookID", "3"), journal.P("BorrowerID", "7")).
					AndAnyEventTypeOf("BookReturnedByBorrower").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				item := f.Items()[0]
				assert.True(t, item.AllPredicatesMustMatch())
				assert.Len(t, item.Predicates(), 2)
				assert.Equal(t, []string{"BookReturnedByBorrower"}, item.EventTypes())
			},
		},
		{
			name: "partial_and_duplicate_predicates_are_dropped",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					Matching().
					AnyPredicateOf(journal.P("BookID", "3"), journal.P("", "x"), journal.P("BookID", ""), journal.P("BookID", "3")).
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Equal(t, []journal.FilterPredicate{journal.P("BookID", "3")}, f.Items()[0].Predicates())
			},
		},
		{
			name: "or_matching_creates_multiple_items",
			build: func() journal.Filter {
				return journal.BuildEventFilter().
					OccurredFrom(from).
					Matching().
					AnyEventTypeOf("BookIssuedToBorrower").
					AndAnyPredicateOf(journal.P("BookID", "3")).
					OrMatching().
					AnyEventTypeOf("HoldRequestPlaced").
					Finalize()
			},
			validate: func(t *testing.T, f journal.Filter) {
				assert.Len(t, f.Items(), 2)
				assert.Equal(t, []string{"HoldRequestPlaced"}, f.Items()[1].EventTypes())
				assert.Empty(t, f.Items()[1].Predicates())
				assert.Equal(t, from, f.OccurredFrom())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_FilterBuilder_PartialChainsCanBeReused(t *testing.T) {
	// arrange
	base := journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookIssuedToBorrower")

	// act
	first := base.AndAnyPredicateOf(journal.P("BookID", "1")).Finalize()
	second := base.AndAnyPredicateOf(journal.P("BookID", "2")).Finalize()

	// assert
	assert.Equal(t, "1", first.Items()[0].Predicates()[0].Val())
	assert.Equal(t, "2", second.Items()[0].Predicates()[0].Val())
	assert.Len(t, first.Items()[0].Predicates(), 1)
}
