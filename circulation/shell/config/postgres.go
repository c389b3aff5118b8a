package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const (
	defaultMaxOpenConnections = 8
	defaultMinConnections     = 2
	defaultMaxIdleConnections = 4
	defaultMaxConnLifetime    = time.Hour
	defaultMaxConnIdleTime    = time.Minute * 5
	defaultHealthCheckPeriod  = time.Minute
	defaultConnectTimeout     = time.Second * 5
)

// PostgresPGXPoolConfig creates a pgxpool.Config for dsn. A librarian session is one
// interactive user, so the pool stays small.
func PostgresPGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	dbConfig.MaxConns = defaultMaxOpenConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// NewPostgresPGXPool connects a pgx pool and pings it.
func NewPostgresPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()

		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	return pool, nil
}

// NewPostgresSQLDB opens a *sql.DB with the lib/pq driver and pings it.
func NewPostgresSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	return db, nil
}

// NewPostgresSQLX opens a *sqlx.DB with the lib/pq driver and pings it.
func NewPostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	configurePool(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()

		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	return db, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
