package eventstore

import (
	"context"
	"errors"
	"maps"
	"strconv"
	"time"
)

// Operation names, used as span names and as the prefix of the metric names.
const (
	OperationQuery  = "archive_query"
	OperationAppend = "archive_append"
	OperationFlush  = "archiver_flush"
)

// Metric name suffixes: <operation>_duration_seconds, <operation>_total and <operation>_entries.
const (
	metricSuffixDuration = "_duration_seconds"
	metricSuffixTotal    = "_total"
	metricSuffixEntries  = "_entries"
)

// Span and metric statuses.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusCanceled = "canceled"
	StatusTimeout  = "timeout"
)

// Label and span attribute keys.
const (
	AttrOperation  = "operation"
	AttrStatus     = "status"
	AttrEntryCount = "entry_count"
	AttrError      = "error"
)

// DurationMetric returns the duration histogram name of operation.
func DurationMetric(operation string) string {
	return operation + metricSuffixDuration
}

// TotalMetric returns the counter name of operation.
func TotalMetric(operation string) string {
	return operation + metricSuffixTotal
}

// EntriesMetric returns the name of the value metric holding the entry count of operation.
func EntriesMetric(operation string) string {
	return operation + metricSuffixEntries
}

// StatusFromError maps the outcome of an operation to a status.
func StatusFromError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	default:
		return StatusError
	}
}

// Instrumentation records one span plus duration, count and entry metrics per operation.
// Both collectors are optional, the zero value records nothing.
type Instrumentation struct {
	metrics MetricsCollector
	tracing TracingCollector
	now     func() time.Time
}

// NewInstrumentation creates an Instrumentation. Either collector may be nil.
func NewInstrumentation(metrics MetricsCollector, tracing TracingCollector) Instrumentation {
	return Instrumentation{metrics: metrics, tracing: tracing, now: time.Now}
}

// Enabled reports whether any collector is configured.
func (i Instrumentation) Enabled() bool {
	return i.metrics != nil || i.tracing != nil
}

// Begin starts measuring operation. labels are added to every metric and to the span.
func (i Instrumentation) Begin(ctx context.Context, operation string, labels map[string]string) (context.Context, *Measurement) {
	m := &Measurement{instrumentation: i, operation: operation, labels: maps.Clone(labels)}
	if m.labels == nil {
		m.labels = make(map[string]string)
	}

	m.labels[AttrOperation] = operation

	if i.now != nil {
		m.started = i.now()
	}

	if i.tracing != nil {
		ctx, m.span = i.tracing.StartSpan(ctx, operation, maps.Clone(m.labels))
	}

	return ctx, m
}

// Measurement is one running operation started by Instrumentation.Begin.
type Measurement struct {
	instrumentation Instrumentation
	operation       string
	labels          map[string]string
	span            SpanContext
	started         time.Time
}

// End records the outcome of the operation. entries is the number of entries it handled.
func (m *Measurement) End(ctx context.Context, entries int, err error) {
	i := m.instrumentation
	status := StatusFromError(err)

	labels := maps.Clone(m.labels)
	labels[AttrStatus] = status

	if i.metrics != nil {
		var duration time.Duration
		if i.now != nil {
			duration = i.now().Sub(m.started)
		}

		if contextual, ok := i.metrics.(ContextualMetricsCollector); ok {
			contextual.RecordDurationContext(ctx, DurationMetric(m.operation), duration, labels)
			contextual.IncrementCounterContext(ctx, TotalMetric(m.operation), labels)
			contextual.RecordValueContext(ctx, EntriesMetric(m.operation), float64(entries), labels)
		} else {
			i.metrics.RecordDuration(DurationMetric(m.operation), duration, labels)
			i.metrics.IncrementCounter(TotalMetric(m.operation), labels)
			i.metrics.RecordValue(EntriesMetric(m.operation), float64(entries), labels)
		}
	}

	if i.tracing != nil && m.span != nil {
		endAttrs := map[string]string{AttrEntryCount: strconv.Itoa(entries)}
		if err != nil {
			endAttrs[AttrError] = err.Error()
		}

		i.tracing.FinishSpan(m.span, status, endAttrs)
	}
}
