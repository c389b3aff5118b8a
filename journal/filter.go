package journal

import (
	"cmp"
	"slices"
	"time"
)

type FilterEventTypeString = string
type FilterKeyString = string
type FilterValString = string

// Filter selects journal events. An event matches when it matches ANY of the items
// and lies inside the optional occurred-at range.
type Filter struct {
	items         []FilterItem
	occurredFrom  time.Time
	occurredUntil time.Time
}

func (f Filter) Items() []FilterItem {
	return f.items
}

// OccurredFrom is the inclusive lower bound of the time range, zero if unbounded.
func (f Filter) OccurredFrom() time.Time {
	return f.occurredFrom
}

// OccurredUntil is the inclusive upper bound of the time range, zero if unbounded.
func (f Filter) OccurredUntil() time.Time {
	return f.occurredUntil
}

// FilterItem matches an event when its type is one of EventTypes (or EventTypes is empty)
// and its payload satisfies the predicates, either any or all of them.
type FilterItem struct {
	eventTypes             []FilterEventTypeString
	predicates             []FilterPredicate
	allPredicatesMustMatch bool
}

func (fi FilterItem) EventTypes() []FilterEventTypeString {
	return fi.eventTypes
}

func (fi FilterItem) Predicates() []FilterPredicate {
	return fi.predicates
}

func (fi FilterItem) AllPredicatesMustMatch() bool {
	return fi.allPredicatesMustMatch
}

// FilterPredicate compares a top-level payload key with a string value.
type FilterPredicate struct {
	key FilterKeyString
	val FilterValString
}

// P builds a FilterPredicate.
func P(key FilterKeyString, val FilterValString) FilterPredicate {
	return FilterPredicate{key: key, val: val}
}

func (fp FilterPredicate) Key() FilterKeyString {
	return fp.key
}

func (fp FilterPredicate) Val() FilterValString {
	return fp.val
}

/***** builder interfaces *****/

// FilterBuilder is the entry point of the fluent filter API. The chain only allows
// combinations that make sense for a circulation stream:
//
//   - any event, optionally inside a time range
//   - (eventType OR eventType...)
//   - (predicate OR predicate...) or (predicate AND predicate...)
//   - (eventTypes AND predicates)
//   - several of the above joined with OR
type FilterBuilder interface {
	// OccurredFrom restricts the filter to events that occurred at or after t.
	OccurredFrom(t time.Time) FilterBuilder

	// OccurredUntil restricts the filter to events that occurred at or before t.
	OccurredUntil(t time.Time) FilterBuilder

	// Matching starts a new FilterItem.
	Matching() EmptyFilterItemBuilder

	// MatchingAnyEvent finalizes a Filter without items.
	MatchingAnyEvent() Filter
}

type EmptyFilterItemBuilder interface {
	AnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) FilterItemBuilderLackingPredicates
	AnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
	AllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) FilterItemBuilderLackingEventTypes
}

type FilterItemBuilderLackingPredicates interface {
	AndAnyPredicateOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	AndAllPredicatesOf(predicate FilterPredicate, predicates ...FilterPredicate) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type FilterItemBuilderLackingEventTypes interface {
	AndAnyEventTypeOf(eventType FilterEventTypeString, eventTypes ...FilterEventTypeString) CompletedFilterItemBuilder
	CompletedFilterItemBuilder
}

type CompletedFilterItemBuilder interface {
	// OrMatching closes the current FilterItem and starts a new one.
	OrMatching() EmptyFilterItemBuilder

	// Finalize closes the current FilterItem and returns the Filter.
	Finalize() Filter
}

/***** builder implementation *****/

// filterBuilder is a value type, so every step works on a copy and partial chains can be reused.
type filterBuilder struct {
	filter  Filter
	current FilterItem
}

// BuildEventFilter starts a new filter, finish it with Finalize or MatchingAnyEvent.
func BuildEventFilter() FilterBuilder {
	return filterBuilder{}
}

func (fb filterBuilder) OccurredFrom(t time.Time) FilterBuilder {
	fb.filter.occurredFrom = t

	return fb
}

func (fb filterBuilder) OccurredUntil(t time.Time) FilterBuilder {
	fb.filter.occurredUntil = t

	return fb
}

func (fb filterBuilder) Matching() EmptyFilterItemBuilder {
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) MatchingAnyEvent() Filter {
	fb.filter.items = nil

	return fb.filter
}

// AnyEventTypeOf adds event types to the current item. Empty types are dropped, the rest sorted and de-duplicated.
func (fb filterBuilder) AnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) FilterItemBuilderLackingPredicates {

	fb.current.eventTypes = sanitizeEventTypes(append(slices.Clone(fb.current.eventTypes), append([]FilterEventTypeString{eventType}, eventTypes...)...))

	return fb
}

func (fb filterBuilder) AndAnyEventTypeOf(
	eventType FilterEventTypeString,
	eventTypes ...FilterEventTypeString,
) CompletedFilterItemBuilder {

	return fb.AnyEventTypeOf(eventType, eventTypes...)
}

// AnyPredicateOf adds predicates of which at least one must match.
// Partial predicates (empty key or value) are dropped, the rest sorted and de-duplicated.
func (fb filterBuilder) AnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	return fb.withPredicates(false, predicate, predicates...)
}

func (fb filterBuilder) AndAnyPredicateOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.withPredicates(false, predicate, predicates...)
}

// AllPredicatesOf adds predicates which must all match.
func (fb filterBuilder) AllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) FilterItemBuilderLackingEventTypes {

	return fb.withPredicates(true, predicate, predicates...)
}

func (fb filterBuilder) AndAllPredicatesOf(
	predicate FilterPredicate,
	predicates ...FilterPredicate,
) CompletedFilterItemBuilder {

	return fb.withPredicates(true, predicate, predicates...)
}

func (fb filterBuilder) withPredicates(all bool, predicate FilterPredicate, predicates ...FilterPredicate) filterBuilder {
	fb.current.allPredicatesMustMatch = all
	fb.current.predicates = sanitizePredicates(append(slices.Clone(fb.current.predicates), append([]FilterPredicate{predicate}, predicates...)...))

	return fb
}

func (fb filterBuilder) OrMatching() EmptyFilterItemBuilder {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)
	fb.current = FilterItem{}

	return fb
}

func (fb filterBuilder) Finalize() Filter {
	fb.filter.items = append(slices.Clone(fb.filter.items), fb.current)

	return fb.filter
}

func sanitizeEventTypes(eventTypes []FilterEventTypeString) []FilterEventTypeString {
	eventTypes = slices.DeleteFunc(eventTypes, func(e FilterEventTypeString) bool { return e == "" })
	slices.Sort(eventTypes)

	return slices.Clip(slices.Compact(eventTypes))
}

func sanitizePredicates(predicates []FilterPredicate) []FilterPredicate {
	predicates = slices.DeleteFunc(predicates, func(p FilterPredicate) bool { return p.key == "" || p.val == "" })
	slices.SortFunc(predicates, func(a, b FilterPredicate) int {
		if c := cmp.Compare(a.key, b.key); c != 0 {
			return c
		}

		return cmp.Compare(a.val, b.val)
	})

	return slices.Clip(slices.Compact(predicates))
}
