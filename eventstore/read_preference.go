package eventstore

import "context"

// ReadPreference selects which database an engine with a read replica queries.
type ReadPreference int

const (
	// ReadFromPrimary sees every entry appended before the query. This is the default,
	// an Archiver reading back what it just flushed needs it.
	ReadFromPrimary ReadPreference = iota

	// ReadFromReplica tolerates replication lag, e.g. for reports over older entries.
	ReadFromReplica
)

type readPreferenceKey struct{}

// WithPrimaryReads returns a context whose queries go to the primary database.
func WithPrimaryReads(ctx context.Context) context.Context {
	return context.WithValue(ctx, readPreferenceKey{}, ReadFromPrimary)
}

// WithReplicaReads returns a context whose queries may go to a read replica.
//
//	entries, _, err := archive.Query(eventstore.WithReplicaReads(ctx), filter)
func WithReplicaReads(ctx context.Context) context.Context {
	return context.WithValue(ctx, readPreferenceKey{}, ReadFromReplica)
}

// ReadPreferenceFrom returns the preference stored in ctx, ReadFromPrimary when none is set.
func ReadPreferenceFrom(ctx context.Context) ReadPreference {
	if preference, ok := ctx.Value(readPreferenceKey{}).(ReadPreference); ok {
		return preference
	}

	return ReadFromPrimary
}

func (p ReadPreference) String() string {
	switch p {
	case ReadFromPrimary:
		return "primary"
	case ReadFromReplica:
		return "replica"
	default:
		return "unknown"
	}
}
