package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
)

// ErrMappingToLogEntryFailed is returned when log entry conversion fails.
var ErrMappingToLogEntryFailed = errors.New("mapping to log entry failed")

// LogEntriesFrom converts multiple StorableEntries to actionlog entries.
func LogEntriesFrom(storableEntries eventstore.StorableEntries) ([]actionlog.Entry, error) {
	entries := make([]actionlog.Entry, 0, len(storableEntries))

	for _, storableEntry := range storableEntries {
		entry, err := LogEntryFrom(storableEntry)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// LogEntryFrom converts a StorableEntry to its actionlog.Entry.
func LogEntryFrom(storableEntry eventstore.StorableEntry) (actionlog.Entry, error) {
	payload := new(entryPayload)

	err := jsoniter.ConfigFastest.Unmarshal(storableEntry.PayloadJSON, payload)
	if err != nil {
		return actionlog.Entry{}, errors.Join(ErrMappingToLogEntryFailed, err)
	}

	return actionlog.Entry{
		OccurredAt: storableEntry.OccurredAt,
		Kind:       storableEntry.Kind,
		Detail:     payload.Detail,
	}, nil
}
