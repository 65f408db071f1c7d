package eventstore

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var ErrEmptyKind = errors.New("entry kind must not be empty")
var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrInvalidMetadataJSON = errors.New("metadata json is not valid")

// StorableEntries is an alias type for a slice of StorableEntry
type StorableEntries = []StorableEntry

// StorableEntry is a DTO (data transfer object) used by the archive engines to append entries and query them back.
//
// It is built on scalars to be completely agnostic of the action log types in the client code.
//
// While its properties are exported, it should only be constructed with BuildStorableEntry.
type StorableEntry struct {
	Kind         string
	Owner        string
	OccurredAt   time.Time
	PayloadJSON  []byte
	MetadataJSON []byte
}

// BuildStorableEntry is a factory method for StorableEntry.
//
// It populates the StorableEntry with the given scalar input.
// Returns an error if kind is empty or payloadJSON or metadataJSON are not valid JSON.
func BuildStorableEntry(
	kind string,
	owner string,
	occurredAt time.Time,
	payloadJSON []byte,
	metadataJSON []byte,
) (StorableEntry, error) {

	if kind == "" {
		return StorableEntry{}, ErrEmptyKind
	}

	if !jsoniter.Valid(payloadJSON) {
		return StorableEntry{}, ErrInvalidPayloadJSON
	}

	if !jsoniter.Valid(metadataJSON) {
		return StorableEntry{}, ErrInvalidMetadataJSON
	}

	return StorableEntry{
		Kind:         kind,
		Owner:        owner,
		OccurredAt:   occurredAt,
		PayloadJSON:  payloadJSON,
		MetadataJSON: metadataJSON,
	}, nil
}
