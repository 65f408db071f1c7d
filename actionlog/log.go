package actionlog

import (
	"errors"
	"strings"

	"github.com/AntonStoeckl/campus-resource-hub/core"
)

// EmptyStateMessage is rendered when a log has no entries.
const EmptyStateMessage = "No action log entries."

// ErrEmptyKind is returned when an entry is recorded without a kind.
var ErrEmptyKind = errors.New("action kind must not be empty")

// Log is an ordered, append-only list of entries owned by exactly one entity.
//
// Log is not safe for concurrent use.
type Log struct {
	entries []Entry
	clock   core.Clock
}

// Option configures a Log.
type Option func(*Log)

// WithClock sets the clock used to timestamp entries.
func WithClock(clock core.Clock) Option {
	return func(l *Log) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// New creates an empty Log.
func New(opts ...Option) *Log {
	l := &Log{
		entries: make([]Entry, 0),
		clock:   core.SystemClock(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Record appends one entry with a generated timestamp and returns it.
// An empty kind is rejected and nothing is appended.
func (l *Log) Record(kind Kind, detail string) (Entry, error) {
	if core.IsBlank(kind) {
		return Entry{}, core.ValidationError(ErrEmptyKind)
	}

	entry := Entry{
		OccurredAt: l.clock.Now(),
		Kind:       kind,
		Detail:     detail,
	}
	l.entries = append(l.entries, entry)

	return entry, nil
}

// History returns a snapshot of all entries in append order.
// The returned slice is a copy, mutating it does not change the log.
func (l *Log) History() []Entry {
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)

	return snapshot
}

// Since returns a snapshot of the entries appended after the first n.
func (l *Log) Since(n int) []Entry {
	if n < 0 {
		n = 0
	}

	if n >= len(l.entries) {
		return []Entry{}
	}

	snapshot := make([]Entry, len(l.entries)-n)
	copy(snapshot, l.entries[n:])

	return snapshot
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Render produces one line per entry, or EmptyStateMessage when the log is empty.
func (l *Log) Render() string {
	if len(l.entries) == 0 {
		return EmptyStateMessage
	}

	var b strings.Builder
	for i, entry := range l.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(entry.String())
	}

	return b.String()
}
