// Package oteladapters implements the eventstore observability interfaces on top of OpenTelemetry.
//
// Durations go to histograms, counters to Int64 counters and values to gauges. Spans are started
// on the given tracer and their status string is mapped to an OpenTelemetry status code.
package oteladapters
