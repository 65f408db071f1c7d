// Package memengine provides an in-process implementation of the archive engine.
//
// It keeps entries in insertion order with sequence numbers starting at 1 and evaluates
// eventstore.Filter in memory. It is the default archive of the demo and the engine used in tests.
package memengine

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
)

const (
	logMsgEntriesAppended = "entries appended"
	logMsgQueryCompleted  = "query completed"
	logMsgOperation       = "memengine operation: "
	logAttrEntryCount     = "entry_count"
	logAttrMaxSequence    = "max_sequence"
)

type sequencedEntry struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	entry          eventstore.StorableEntry
}

// Archive is safe for concurrent use.
type Archive struct {
	mu      sync.RWMutex
	entries []sequencedEntry
	logger  eventstore.Logger
}

// Option defines a functional option for configuring Archive.
type Option func(*Archive)

// WithLogger sets the logger for the Archive. Operations are logged at info level.
func WithLogger(logger eventstore.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// NewArchive creates an empty Archive.
func NewArchive(options ...Option) *Archive {
	a := &Archive{
		entries: make([]sequencedEntry, 0),
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// Append stores all entries atomically in the given order.
func (a *Archive) Append(
	ctx context.Context,
	entry eventstore.StorableEntry,
	additionalEntries ...eventstore.StorableEntry,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	allEntries := append(eventstore.StorableEntries{entry}, additionalEntries...)

	a.mu.Lock()
	next := eventstore.MaxSequenceNumberUint(len(a.entries)) + 1
	for i, e := range allEntries {
		a.entries = append(a.entries, sequencedEntry{sequenceNumber: next + eventstore.MaxSequenceNumberUint(i), entry: cloneEntry(e)})
	}
	a.mu.Unlock()

	a.logOperation(logMsgEntriesAppended, logAttrEntryCount, len(allEntries))

	return nil
}

// Query returns the entries matching filter in sequence order
// as well as the highest sequence number among them (0 when nothing matched).
func (a *Archive) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEntries,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEntries

	if err := ctx.Err(); err != nil {
		return empty, 0, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make(eventstore.StorableEntries, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, e := range a.entries {
		if !filter.Matches(e.entry) {
			continue
		}

		result = append(result, cloneEntry(e.entry))
		maxSequenceNumber = e.sequenceNumber
	}

	a.logOperation(logMsgQueryCompleted, logAttrEntryCount, len(result), logAttrMaxSequence, maxSequenceNumber)

	return result, maxSequenceNumber, nil
}

// Len returns the number of stored entries.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return len(a.entries)
}

func (a *Archive) logOperation(action string, args ...any) {
	if a.logger != nil {
		a.logger.Info(logMsgOperation+action, args...)
	}
}

// cloneEntry keeps callers from mutating stored JSON through shared slices.
func cloneEntry(e eventstore.StorableEntry) eventstore.StorableEntry {
	e.PayloadJSON = slices.Clone(e.PayloadJSON)
	e.MetadataJSON = slices.Clone(e.MetadataJSON)

	return e
}
