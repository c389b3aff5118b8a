// Package config loads the librarian configuration and builds the infrastructure it describes.
//
// Configuration comes from an optional YAML file, overlaid on Defaults, and then from the
// environment (DATABASE_URL, DB_ADAPTER, LOG_LEVEL, LOG_FORMAT, OTEL_EXPORTER_OTLP_ENDPOINT).
// A .env file is read first when present.
//
// Besides the configuration types the package provides the factories for the journal engine
// (in-memory or PostgreSQL via pgx.Pool, sql.DB or sqlx.DB), the slog logger and the
// OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
