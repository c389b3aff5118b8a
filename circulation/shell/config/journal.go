package config

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shell"
	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/memengine"
	"github.com/AntonStoeckl/library-circulation-go/journal/postgresengine"
)

// OpenJournal creates the journal engine selected by cfg. logger and metrics may be nil.
// The returned closer releases the database connection, it is a no-op for the memory engine.
func OpenJournal(
	ctx context.Context,
	cfg JournalConfig,
	logger *slog.Logger,
	metrics journal.MetricsCollector,
) (shell.Journal, func() error, error) {

	noop := func() error { return nil }

	if cfg.Adapter == AdapterMemory {
		var options []memengine.Option
		if logger != nil {
			options = append(options, memengine.WithLogger(logger))
		}

		return memengine.NewEngine(options...), noop, nil
	}

	options := []postgresengine.Option{postgresengine.WithTableName(cfg.Table)}
	if logger != nil {
		options = append(options, postgresengine.WithLogger(logger))
	}
	if metrics != nil {
		options = append(options, postgresengine.WithMetrics(metrics))
	}

	var (
		engine *postgresengine.Engine
		closer func() error
		err    error
	)

	switch cfg.Adapter {
	case AdapterPGX:
		pool, poolErr := NewPostgresPGXPool(ctx, cfg.DSN)
		if poolErr != nil {
			return nil, nil, poolErr
		}

		closer = func() error {
			pool.Close()

			return nil
		}
		engine, err = postgresengine.NewEngineFromPGXPool(pool, options...)

	case AdapterSQL:
		db, dbErr := NewPostgresSQLDB(ctx, cfg.DSN)
		if dbErr != nil {
			return nil, nil, dbErr
		}

		closer = db.Close
		engine, err = postgresengine.NewEngineFromSQLDB(db, options...)

	case AdapterSQLX:
		db, dbErr := NewPostgresSQLX(ctx, cfg.DSN)
		if dbErr != nil {
			return nil, nil, dbErr
		}

		closer = db.Close
		engine, err = postgresengine.NewEngineFromSQLX(db, options...)

	default:
		return nil, nil, errors.Join(ErrInvalidConfig, cfg.unknownAdapterError())
	}

	if err != nil {
		_ = closer()

		return nil, nil, err
	}

	if cfg.EnsureTable {
		if err := engine.EnsureTable(ctx); err != nil {
			_ = closer()

			return nil, nil, err
		}
	}

	return engine, closer, nil
}
