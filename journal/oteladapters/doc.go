// Package oteladapters implements the journal and circulation observability interfaces
// on top of OpenTelemetry: an slog bridge logger, a metrics collector and a tracing collector.
package oteladapters
