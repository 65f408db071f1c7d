package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
)

// ErrMappingToStorableEntryFailedForLogEntry is returned when log entry serialization fails
var ErrMappingToStorableEntryFailedForLogEntry = errors.New("mapping to storable entry failed for log entry")

// ErrMappingToStorableEntryFailedForMetadata is returned when metadata serialization fails
var ErrMappingToStorableEntryFailedForMetadata = errors.New("mapping to storable entry failed for metadata")

// entryPayload is the JSON shape of an archived entry's payload.
type entryPayload struct {
	Detail string `json:"detail"`
}

// StorableEntryFrom converts an actionlog.Entry of owner and its EntryMetadata to a StorableEntry
func StorableEntryFrom(owner core.OwnerID, entry actionlog.Entry, metadata EntryMetadata) (eventstore.StorableEntry, error) {
	payloadJSON, err := jsoniter.ConfigFastest.Marshal(entryPayload{Detail: entry.Detail})
	if err != nil {
		return eventstore.StorableEntry{}, errors.Join(ErrMappingToStorableEntryFailedForLogEntry, err)
	}

	metadataJSON, err := jsoniter.ConfigFastest.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEntry{}, errors.Join(ErrMappingToStorableEntryFailedForMetadata, err)
	}

	storableEntry, err := eventstore.BuildStorableEntry(
		entry.Kind,
		owner,
		core.ToOccurredAt(entry.OccurredAt),
		payloadJSON,
		metadataJSON,
	)

	if err != nil {
		return eventstore.StorableEntry{}, errors.Join(ErrMappingToStorableEntryFailedForLogEntry, err)
	}

	return storableEntry, nil
}
