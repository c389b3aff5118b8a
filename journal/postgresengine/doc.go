// Package postgresengine stores the circulation journal in PostgreSQL.
//
// It can be created from a pgx pool, a database/sql handle (lib/pq) or a sqlx handle.
// The table layout is created by EnsureTable:
//
//	sequence_number BIGSERIAL PRIMARY KEY
//	occurred_at     TIMESTAMP WITH TIME ZONE
//	event_type      TEXT
//	payload         JSONB (GIN index, jsonb_path_ops)
//	metadata        JSONB
//
// Filter predicates become JSONB containment checks (payload @> '{"BookID":"7"}'), and
// appends are single INSERT ... SELECT statements guarded by the max sequence number of
// the filtered stream, so a concurrent writer on the same book makes Append fail with
// journal.ErrConcurrencyConflict instead of silently interleaving.
package postgresengine
