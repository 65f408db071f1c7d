package postgresengine

import (
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
)

// Option defines a functional option for configuring Archive.
type Option func(*Archive) error

// WithTableName sets the table name for the Archive.
func WithTableName(tableName string) Option {
	return func(a *Archive) error {
		if tableName == "" {
			return eventstore.ErrEmptyTableNameSupplied
		}

		a.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Archive.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Entry counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger eventstore.Logger) Option {
	return func(a *Archive) error {
		a.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Archive.
// Every Query and Append records <operation>_duration_seconds, <operation>_total and <operation>_entries
// with operation, status and table labels.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(a *Archive) error {
		a.metrics = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Archive. Every Query and Append runs in its own span.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(a *Archive) error {
		a.tracing = collector
		return nil
	}
}
