// Package journal provides the append-only circulation journal: an audit trail of
// everything the circulation engine decided, stored as generic events.
//
// The journal never drives the circulation state. The catalog keeps the live state;
// the journal records what happened and lets queries rebuild history from it.
//
// Events are selected with a Filter, which combines:
//   - Event types
//   - JSON payload predicates
//   - Time ranges (occurred from/until)
//
// Common usage pattern:
//
//	filter := journal.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BookIssuedToBorrowerEventType,
//			core.BookReturnedByBorrowerEventType).
//		AndAnyPredicateOf(journal.P("BookID", bookID.String())).
//		Finalize()
//
//	_, maxSeq, err := engine.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = engine.Append(ctx, filter, maxSeq, storableEvent)
//
// Append is guarded by optimistic concurrency: it fails with ErrConcurrencyConflict when
// another writer appended a matching event after the Query.
package journal
