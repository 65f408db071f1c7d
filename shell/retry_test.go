package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/memengine"
	"github.com/AntonStoeckl/campus-resource-hub/shell"
)

var errAppendFailed = errors.Join(eventstore.ErrAppendingEntryFailed, errors.New("connection reset"))

func Test_RetryWithExponentialBackoff_SucceedsWithoutRetry(t *testing.T) {
	// arrange
	calls := 0
	fn := func(_ context.Context) error {
		calls++
		return nil
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func Test_RetryWithExponentialBackoff_RetriesFailedAppends(t *testing.T) {
	// arrange
	calls := 0
	fn := func(_ context.Context) error {
		calls++
		if calls < 3 {
			return errAppendFailed
		}

		return nil
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func Test_RetryWithExponentialBackoff_FailsFastOnOtherErrors(t *testing.T) {
	// arrange
	calls := 0
	fn := func(_ context.Context) error {
		calls++
		return eventstore.ErrGettingRowsAffectedFailed
	}

	// act
	err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrGettingRowsAffectedFailed)
	assert.Equal(t, 1, calls)
}

func Test_RetryWithExponentialBackoff_StopsAfterMaxAttempts(t *testing.T) {
	// arrange
	calls := 0
	fn := func(_ context.Context) error {
		calls++
		return errAppendFailed
	}

	// act
	err := shell.RetryWithExponentialBackoff(
		context.Background(),
		fn,
		shell.WithMaxAttempts(2),
		shell.WithBaseDelay(0),
		shell.WithJitterFactor(0),
	)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrAppendingEntryFailed)
	assert.Equal(t, 2, calls)
}

func Test_RetryWithExponentialBackoff_StopsWhenContextIsDone(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) error {
		cancel()
		return errAppendFailed
	}

	// act
	err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Hour))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_RetryWithExponentialBackoff_RejectsInvalidOptions(t *testing.T) {
	testCases := []struct {
		name     string
		option   shell.RetryOption
		expected error
	}{
		{name: "zero attempts", option: shell.WithMaxAttempts(0), expected: shell.ErrInvalidMaxAttempts},
		{name: "negative delay", option: shell.WithBaseDelay(-time.Millisecond), expected: shell.ErrNegativeBaseDelay},
		{name: "jitter above one", option: shell.WithJitterFactor(1.5), expected: shell.ErrInvalidJitterFactor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			err := shell.RetryWithExponentialBackoff(context.Background(), func(context.Context) error { return nil }, tc.option)

			// assert
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func Test_Archiver_FlushWithRetry_ExportsAfterTransientFailure(t *testing.T) {
	// arrange
	ctx := context.Background()
	archive := &failingArchive{Archive: memengine.NewArchive(), failures: 2, err: errAppendFailed}
	archiver, err := shell.NewArchiver(archive, "S001", givenLog(t, "first", "second"))
	require.NoError(t, err)

	// act
	flushed, err := archiver.FlushWithRetry(ctx, shell.WithBaseDelay(time.Millisecond))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, flushed)
	assert.Equal(t, 2, archiver.Exported())
	assert.Equal(t, 2, archive.Len())
}
