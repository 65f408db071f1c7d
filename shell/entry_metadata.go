package shell

import (
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
)

// ErrMappingToEntryMetadataFailed is returned when metadata conversion fails.
var ErrMappingToEntryMetadataFailed = errors.New("mapping to entry metadata failed")

// MessageID represents a unique message identifier.
type MessageID = string

// CausationID represents the ID of the entry that preceded this entry in the same log.
type CausationID = string

// CorrelationID represents the ID correlating all entries flushed by one archiver.
type CorrelationID = string

// EntryMetadata contains entry tracking information.
type EntryMetadata struct {
	MessageID     MessageID     `json:"message_id"`
	CausationID   CausationID   `json:"causation_id"`
	CorrelationID CorrelationID `json:"correlation_id"`
}

// BuildEntryMetadata creates EntryMetadata from UUID values.
func BuildEntryMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EntryMetadata {
	return EntryMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EntryMetadataFrom extracts EntryMetadata from a StorableEntry.
func EntryMetadataFrom(storableEntry eventstore.StorableEntry) (EntryMetadata, error) {
	metadata := new(EntryMetadata)
	err := jsoniter.ConfigFastest.Unmarshal(storableEntry.MetadataJSON, metadata)
	if err != nil {
		return EntryMetadata{}, errors.Join(ErrMappingToEntryMetadataFailed, err)
	}

	return *metadata, nil
}
