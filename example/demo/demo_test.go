package demo_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/memengine"
	"github.com/AntonStoeckl/campus-resource-hub/example/demo"
	"github.com/AntonStoeckl/campus-resource-hub/testutil/helper"
)

func fixedClock() core.Clock {
	return core.ClockFunc(func() time.Time {
		return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	})
}

func Test_Run_WritesTheWalkthrough(t *testing.T) {
	// arrange
	out := &bytes.Buffer{}
	archive := memengine.NewArchive()

	// act
	err := demo.Run(context.Background(), demo.Options{Out: out, Archive: archive, Clock: fixedClock()})

	// assert
	require.NoError(t, err)

	transcript := out.String()
	assert.Contains(t, transcript, "Created Premium Student: Ali (Mentor: M001)")
	assert.Contains(t, transcript, "Enrolled: Zahra -> Async Python (instructor: Mentor M001, 1/5 students)")
	assert.Contains(t, transcript, "Account(owner=S001, balance=350.00)")
	assert.Contains(t, transcript, "Account(owner=S002, balance=450.00)")
	assert.Contains(t, transcript, "Resource Approved: 3D Printer for Zahra by Mentor Omar")
	assert.Contains(t, transcript, "Resource Approved: Laptop for Malik by Mentor Omar")
	assert.Contains(t, transcript, "Status: available=1, borrowed=2, maintenance=0")
	assert.Contains(t, transcript, "REPORT: students=3 | premium=1 | mentor_approvals=2 | catalog_size=3")
	assert.Contains(t, transcript, "Person equality (by ID): true")
	assert.Contains(t, transcript, "DEMO COMPLETE")
}

func Test_Run_ArchivesEveryRecordedEntry(t *testing.T) {
	// arrange
	archive := memengine.NewArchive()

	// act
	err := demo.Run(context.Background(), demo.Options{Out: &bytes.Buffer{}, Archive: archive, Clock: fixedClock()})

	// assert
	require.NoError(t, err)
	assert.Positive(t, archive.Len())
}

func Test_Run_MeasuresEveryFlush(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()

	// act
	err := demo.Run(context.Background(), demo.Options{
		Out:     &bytes.Buffer{},
		Archive: memengine.NewArchive(),
		Metrics: metricsSpy,
		Tracing: tracingSpy,
		Clock:   fixedClock(),
	})

	// assert
	require.NoError(t, err)
	assert.True(t, metricsSpy.HasDurationRecordForMetric(eventstore.DurationMetric(eventstore.OperationFlush)).
		WithStatus(eventstore.StatusSuccess).
		WithLabel("owner", "S001").
		Assert())
	assert.True(t, tracingSpy.HasFinishedSpan(eventstore.OperationFlush, eventstore.StatusSuccess))
}

func Test_Run_RequiresOutputAndArchive(t *testing.T) {
	// act
	err := demo.Run(context.Background(), demo.Options{})

	// assert
	assert.Error(t, err)
}
