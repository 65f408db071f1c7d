package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/memengine"
	"github.com/AntonStoeckl/campus-resource-hub/shell"
	"github.com/AntonStoeckl/campus-resource-hub/testutil/helper"
)

func Test_StorableEntryFrom_RoundTripsThroughLogEntryFrom(t *testing.T) {
	// arrange
	occurredAt := time.Date(2026, 3, 1, 9, 30, 0, 123456789, time.FixedZone("CET", 3600))
	entry := actionlog.Entry{OccurredAt: occurredAt, Kind: actionlog.KindDeposit, Detail: `S001 deposited "10.00"`}
	metadata := shell.BuildEntryMetadata(uuid.New(), uuid.New(), uuid.New())

	// act
	storable, err := shell.StorableEntryFrom("S001", entry, metadata)
	require.NoError(t, err)
	back, err := shell.LogEntryFrom(storable)
	require.NoError(t, err)
	backMetadata, err := shell.EntryMetadataFrom(storable)
	require.NoError(t, err)

	// assert
	assert.Equal(t, "deposit", storable.Kind)
	assert.Equal(t, "S001", storable.Owner)
	assert.Equal(t, core.ToOccurredAt(occurredAt), storable.OccurredAt)
	assert.Equal(t, entry.Detail, back.Detail)
	assert.Equal(t, entry.Kind, back.Kind)
	assert.True(t, occurredAt.Truncate(time.Microsecond).Equal(back.OccurredAt))
	assert.Equal(t, metadata, backMetadata)
}

func Test_StorableEntryFrom_FailsForEmptyKind(t *testing.T) {
	_, err := shell.StorableEntryFrom("S001", actionlog.Entry{OccurredAt: time.Now()}, shell.EntryMetadata{})

	assert.ErrorIs(t, err, shell.ErrMappingToStorableEntryFailedForLogEntry)
	assert.ErrorIs(t, err, eventstore.ErrEmptyKind)
}

func Test_LogEntryFrom_FailsForBrokenPayload(t *testing.T) {
	_, err := shell.LogEntryFrom(eventstore.StorableEntry{Kind: "deposit", PayloadJSON: []byte(`[1, 2]`)})

	assert.ErrorIs(t, err, shell.ErrMappingToLogEntryFailed)
}

func Test_NewArchiver_ValidationErrors(t *testing.T) {
	_, err := shell.NewArchiver(nil, "S001", actionlog.New())
	assert.ErrorIs(t, err, shell.ErrNilArchive)

	_, err = shell.NewArchiver(memengine.NewArchive(), "S001", nil)
	assert.ErrorIs(t, err, shell.ErrNilActionLog)

	_, err = shell.NewArchiver(memengine.NewArchive(), " ", actionlog.New())
	assert.ErrorIs(t, err, core.ErrInvalidIdentifier)
	assert.True(t, core.IsValidation(err))
}

func Test_Archiver_FlushOnlySendsNewEntries(t *testing.T) {
	// arrange
	ctx := context.Background()
	archive := memengine.NewArchive()
	log := givenLog(t, "first", "second")
	logSpy := helper.NewLogHandlerSpy(false)
	archiver, err := shell.NewArchiver(archive, "S001", log, shell.WithArchiverLogger(logSpy.Logger()))
	require.NoError(t, err)

	// act
	firstFlush, err := archiver.Flush(ctx)
	require.NoError(t, err)
	_, err = log.Record(actionlog.KindWithdrawal, "third")
	require.NoError(t, err)
	secondFlush, err := archiver.Flush(ctx)
	require.NoError(t, err)
	emptyFlush, err := archiver.Flush(ctx)
	require.NoError(t, err)

	// assert
	assert.Equal(t, 2, firstFlush)
	assert.Equal(t, 1, secondFlush)
	assert.Equal(t, 0, emptyFlush)
	assert.Equal(t, 3, archiver.Exported())
	assert.Equal(t, 3, archive.Len())
	assert.True(t, logSpy.HasInfoLogWithMessage("action log flushed").
		WithKeyValue("owner", "S001").
		WithKeyValue("entry_count", "2").
		Assert())
}

func Test_Archiver_ChainsMetadata(t *testing.T) {
	// arrange
	ctx := context.Background()
	archive := memengine.NewArchive()
	archiver, err := shell.NewArchiver(archive, "S001", givenLog(t, "first", "second"))
	require.NoError(t, err)

	// act
	_, err = archiver.Flush(ctx)
	require.NoError(t, err)

	// assert
	stored, _, err := archive.Query(ctx, eventstore.BuildEntryFilter().MatchingAnyEntry())
	require.NoError(t, err)
	require.Len(t, stored, 2)

	first, err := shell.EntryMetadataFrom(stored[0])
	require.NoError(t, err)
	second, err := shell.EntryMetadataFrom(stored[1])
	require.NoError(t, err)

	assert.Equal(t, archiver.CorrelationID().String(), first.CorrelationID)
	assert.Equal(t, archiver.CorrelationID().String(), second.CorrelationID)
	assert.Equal(t, first.MessageID, second.CausationID)
	assert.NotEqual(t, first.MessageID, second.MessageID)
}

func Test_Archiver_ArchivedReadsBackOwnEntries(t *testing.T) {
	// arrange
	ctx := context.Background()
	archive := memengine.NewArchive()
	ownLog := givenLog(t, "mine")
	otherLog := givenLog(t, "theirs")
	own, err := shell.NewArchiver(archive, "S001", ownLog)
	require.NoError(t, err)
	other, err := shell.NewArchiver(archive, "S002", otherLog)
	require.NoError(t, err)
	_, err = ownLog.Record(actionlog.KindWithdrawal, "mine too")
	require.NoError(t, err)
	_, err = own.Flush(ctx)
	require.NoError(t, err)
	_, err = other.Flush(ctx)
	require.NoError(t, err)

	// act
	all, err := own.Archived(ctx)
	require.NoError(t, err)
	withdrawals, err := own.Archived(ctx, actionlog.KindWithdrawal)
	require.NoError(t, err)

	// assert
	require.Len(t, all, 2)
	assert.Equal(t, "mine", all[0].Detail)
	assert.Equal(t, "mine too", all[1].Detail)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, "mine too", withdrawals[0].Detail)
}

func Test_Archiver_FailedFlushIsRetried(t *testing.T) {
	// arrange
	ctx := context.Background()
	archive := &failingArchive{Archive: memengine.NewArchive(), failures: 1}
	archiver, err := shell.NewArchiver(archive, "S001", givenLog(t, "first"))
	require.NoError(t, err)

	// act
	_, firstErr := archiver.Flush(ctx)
	retried, secondErr := archiver.Flush(ctx)

	// assert
	assert.ErrorIs(t, firstErr, errArchiveDown)
	assert.NoError(t, secondErr)
	assert.Equal(t, 1, retried)
	assert.Equal(t, 1, archiver.Exported())
}

func Test_Archiver_FlushRecordsMetricsAndSpan(t *testing.T) {
	// arrange
	ctx := context.Background()
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	archiver, err := shell.NewArchiver(
		memengine.NewArchive(),
		"S001",
		givenLog(t, "first", "second"),
		shell.WithArchiverMetrics(metricsSpy),
		shell.WithArchiverTracing(tracingSpy),
	)
	require.NoError(t, err)

	// act
	_, err = archiver.Flush(ctx)
	require.NoError(t, err)
	_, err = archiver.Flush(ctx)
	require.NoError(t, err)

	// assert
	assert.Len(t, metricsSpy.GetDurationRecords(), 1, "an empty flush records nothing")
	assert.True(t, metricsSpy.HasDurationRecordForMetric(eventstore.DurationMetric(eventstore.OperationFlush)).
		WithStatus(eventstore.StatusSuccess).
		WithLabel("owner", "S001").
		Assert())

	flushed, ok := metricsSpy.ValueFor(eventstore.EntriesMetric(eventstore.OperationFlush))
	require.True(t, ok)
	assert.Equal(t, 2.0, flushed)
	assert.True(t, tracingSpy.HasFinishedSpan(eventstore.OperationFlush, eventstore.StatusSuccess))
}

func Test_Archiver_FailedFlushRecordsErrorStatus(t *testing.T) {
	// arrange
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	archive := &failingArchive{Archive: memengine.NewArchive(), failures: 1}
	archiver, err := shell.NewArchiver(
		archive,
		"S001",
		givenLog(t, "first"),
		shell.WithArchiverMetrics(metricsSpy),
		shell.WithArchiverTracing(tracingSpy),
	)
	require.NoError(t, err)

	// act
	_, err = archiver.Flush(context.Background())

	// assert
	require.ErrorIs(t, err, errArchiveDown)
	assert.True(t, metricsSpy.HasCounterRecordForMetric(eventstore.TotalMetric(eventstore.OperationFlush)).
		WithStatus(eventstore.StatusError).
		Assert())
	assert.True(t, tracingSpy.HasFinishedSpan(eventstore.OperationFlush, eventstore.StatusError))
}

var errArchiveDown = errors.New("archive down")

type failingArchive struct {
	*memengine.Archive
	failures int
	err      error
}

func (f *failingArchive) Append(ctx context.Context, entry eventstore.StorableEntry, more ...eventstore.StorableEntry) error {
	if f.failures > 0 {
		f.failures--
		if f.err != nil {
			return f.err
		}

		return errArchiveDown
	}

	return f.Archive.Append(ctx, entry, more...)
}

func givenLog(t *testing.T, details ...string) *actionlog.Log {
	t.Helper()

	log := actionlog.New()
	for _, detail := range details {
		_, err := log.Record(actionlog.KindDeposit, detail)
		require.NoError(t, err)
	}

	return log
}
