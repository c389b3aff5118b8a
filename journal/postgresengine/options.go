package postgresengine

import (
	"github.com/AntonStoeckl/library-circulation-go/journal"
)

// Option defines a functional option for configuring Engine.
type Option func(*Engine) error

// WithTableName sets the journal table name, default "circulation_events".
func WithTableName(tableName string) Option {
	return func(e *Engine) error {
		if tableName == "" {
			return journal.ErrEmptyTableNameSupplied
		}

		e.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Engine:
//
// Debug level: SQL statements with execution timing
// Info level: event counts, durations, concurrency conflicts
// Warn level: cleanup failures
// Error level: failures that abort an operation.
func WithLogger(logger journal.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector, which receives query and append durations
// and a counter of concurrency conflicts.
func WithMetrics(collector journal.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metricsCollector = collector

		return nil
	}
}
