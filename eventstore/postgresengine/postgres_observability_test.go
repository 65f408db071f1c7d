package postgresengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/testutil/helper"
)

func Test_Append_RecordsMetricsAndSpan(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	archive := givenArchive(t, &fakeDB{rowsAffected: 2}, WithMetrics(metricsSpy), WithTracing(tracingSpy), WithTableName("audit"))

	// act
	err := archive.Append(context.Background(), givenEntry(t, "deposit", `{}`), givenEntry(t, "withdrawal", `{}`))

	// assert
	require.NoError(t, err)
	assert.True(t, metricsSpy.HasDurationRecordForMetric(eventstore.DurationMetric(eventstore.OperationAppend)).
		WithOperation(eventstore.OperationAppend).
		WithStatus(eventstore.StatusSuccess).
		WithLabel(labelTable, "audit").
		Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric(eventstore.TotalMetric(eventstore.OperationAppend)).
		WithStatus(eventstore.StatusSuccess).
		Assert())

	appended, ok := metricsSpy.ValueFor(eventstore.EntriesMetric(eventstore.OperationAppend))
	require.True(t, ok)
	assert.Equal(t, 2.0, appended)
	assert.True(t, tracingSpy.HasFinishedSpan(eventstore.OperationAppend, eventstore.StatusSuccess))
}

func Test_Append_RecordsErrorStatus(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	archive := givenArchive(t, &fakeDB{execErr: errors.New("connection reset")}, WithMetrics(metricsSpy), WithTracing(tracingSpy))

	// act
	err := archive.Append(context.Background(), givenEntry(t, "deposit", `{}`))

	// assert
	require.Error(t, err)
	assert.True(t, metricsSpy.HasCounterRecordForMetric(eventstore.TotalMetric(eventstore.OperationAppend)).
		WithStatus(eventstore.StatusError).
		Assert())
	assert.True(t, tracingSpy.HasFinishedSpan(eventstore.OperationAppend, eventstore.StatusError))

	spans := tracingSpy.GetSpanRecords()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].EndAttributes[eventstore.AttrError], "connection reset")
}

func Test_Query_RecordsMetricsAndSpan(t *testing.T) {
	// arrange
	occurredAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	db := &fakeDB{
		rows: [][]any{
			{"deposit", "S001", occurredAt, []byte(`{"detail":"a"}`), []byte(`{}`), uint(1)},
		},
	}
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	archive := givenArchive(t, db, WithMetrics(metricsSpy), WithTracing(tracingSpy))

	// act
	_, _, err := archive.Query(context.Background(), eventstore.BuildEntryFilter().MatchingAnyEntry())

	// assert
	require.NoError(t, err)
	assert.True(t, metricsSpy.HasDurationRecordForMetric(eventstore.DurationMetric(eventstore.OperationQuery)).
		WithStatus(eventstore.StatusSuccess).
		WithLabel(labelTable, defaultTableName).
		Assert())

	found, ok := metricsSpy.ValueFor(eventstore.EntriesMetric(eventstore.OperationQuery))
	require.True(t, ok)
	assert.Equal(t, 1.0, found)

	spans := tracingSpy.GetSpanRecords()
	require.Len(t, spans, 1)
	assert.Equal(t, eventstore.OperationQuery, spans[0].Name)
	assert.Equal(t, "1", spans[0].EndAttributes[eventstore.AttrEntryCount])
}

func Test_Query_WithoutCollectors_RecordsNothing(t *testing.T) {
	archive := givenArchive(t, &fakeDB{})

	_, _, err := archive.Query(context.Background(), eventstore.BuildEntryFilter().MatchingAnyEntry())

	assert.NoError(t, err)
	assert.False(t, archive.instrumentation().Enabled())
}
