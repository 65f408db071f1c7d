package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/campus-resource-hub/actionlog"
	"github.com/AntonStoeckl/campus-resource-hub/core"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
)

const (
	logMsgFlushed      = "action log flushed"
	logMsgFlushFailed  = "action log flush failed"
	logAttrOwner       = "owner"
	logAttrEntryCount  = "entry_count"
	logAttrWatermark   = "watermark"
	logAttrError       = "error"
	logAttrCorrelation = "correlation_id"
)

var (
	// ErrNilArchive is returned when an Archiver is created without an archive engine.
	ErrNilArchive = errors.New("archive must not be nil")

	// ErrNilActionLog is returned when an Archiver is created without a log.
	ErrNilActionLog = errors.New("action log must not be nil")

	// ErrGeneratingMessageIDFailed is returned when no UUID could be generated for an entry.
	ErrGeneratingMessageIDFailed = errors.New("generating message id failed")
)

// Archive is the engine contract the Archiver writes to and reads from.
// Both memengine.Archive and postgresengine.Archive implement it.
type Archive interface {
	Append(ctx context.Context, entry eventstore.StorableEntry, additionalEntries ...eventstore.StorableEntry) error
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEntries, eventstore.MaxSequenceNumberUint, error)
}

// Archiver exports the entries of one owner's action log to an Archive.
//
// It remembers how many entries were exported, so each Flush only sends new ones.
// The core never reads the archive back to make decisions.
type Archiver struct {
	archive       Archive
	owner         core.OwnerID
	log           *actionlog.Log
	logger        eventstore.Logger
	metrics       eventstore.MetricsCollector
	tracing       eventstore.TracingCollector
	correlationID uuid.UUID
	lastMessageID uuid.UUID
	watermark     int
}

// ArchiverOption configures an Archiver.
type ArchiverOption func(*Archiver)

// WithArchiverLogger sets the logger for the Archiver.
func WithArchiverLogger(logger eventstore.Logger) ArchiverOption {
	return func(a *Archiver) {
		a.logger = logger
	}
}

// WithArchiverMetrics sets the metrics collector that measures every Flush.
func WithArchiverMetrics(collector eventstore.MetricsCollector) ArchiverOption {
	return func(a *Archiver) {
		a.metrics = collector
	}
}

// WithArchiverTracing sets the tracing collector that opens a span per Flush.
func WithArchiverTracing(collector eventstore.TracingCollector) ArchiverOption {
	return func(a *Archiver) {
		a.tracing = collector
	}
}

// NewArchiver creates an Archiver for the log of owner.
func NewArchiver(archive Archive, owner core.OwnerID, log *actionlog.Log, options ...ArchiverOption) (*Archiver, error) {
	if archive == nil {
		return nil, core.ValidationError(ErrNilArchive)
	}

	if log == nil {
		return nil, core.ValidationError(ErrNilActionLog)
	}

	if core.IsBlank(owner) {
		return nil, core.ValidationError(core.ErrInvalidIdentifier)
	}

	correlationID, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Join(ErrGeneratingMessageIDFailed, err)
	}

	a := &Archiver{
		archive:       archive,
		owner:         owner,
		log:           log,
		correlationID: correlationID,
		lastMessageID: correlationID,
	}

	for _, option := range options {
		option(a)
	}

	return a, nil
}

// Flush appends all entries recorded since the last successful Flush and returns how many were appended.
// On failure nothing is marked as exported, so the next Flush retries the same entries.
func (a *Archiver) Flush(ctx context.Context) (int, error) {
	pending := a.log.Since(a.watermark)
	if len(pending) == 0 {
		return 0, nil
	}

	instrumentation := eventstore.NewInstrumentation(a.metrics, a.tracing)
	ctx, measurement := instrumentation.Begin(ctx, eventstore.OperationFlush, map[string]string{logAttrOwner: a.owner})

	flushed, err := a.flush(ctx, pending)
	measurement.End(ctx, flushed, err)

	return flushed, err
}

func (a *Archiver) flush(ctx context.Context, pending []actionlog.Entry) (int, error) {

	storableEntries := make(eventstore.StorableEntries, 0, len(pending))
	causationID := a.lastMessageID

	for _, entry := range pending {
		messageID, err := uuid.NewV7()
		if err != nil {
			return 0, errors.Join(ErrGeneratingMessageIDFailed, err)
		}

		storableEntry, err := StorableEntryFrom(a.owner, entry, BuildEntryMetadata(messageID, causationID, a.correlationID))
		if err != nil {
			return 0, err
		}

		storableEntries = append(storableEntries, storableEntry)
		causationID = messageID
	}

	if err := a.archive.Append(ctx, storableEntries[0], storableEntries[1:]...); err != nil {
		if a.logger != nil {
			a.logger.Error(logMsgFlushFailed, logAttrOwner, a.owner, logAttrError, err.Error())
		}

		return 0, err
	}

	a.watermark += len(pending)
	a.lastMessageID = causationID

	if a.logger != nil {
		a.logger.Info(
			logMsgFlushed,
			logAttrOwner, a.owner,
			logAttrEntryCount, len(pending),
			logAttrWatermark, a.watermark,
			logAttrCorrelation, a.correlationID.String(),
		)
	}

	return len(pending), nil
}

// Exported returns how many entries of the log have been archived.
func (a *Archiver) Exported() int {
	return a.watermark
}

// CorrelationID returns the ID shared by all entries this Archiver exports.
func (a *Archiver) CorrelationID() uuid.UUID {
	return a.correlationID
}

// Archived reads back the owner's archived entries, optionally restricted to kinds.
func (a *Archiver) Archived(ctx context.Context, kinds ...actionlog.Kind) ([]actionlog.Entry, error) {
	var filter eventstore.Filter

	if len(kinds) > 0 {
		filter = eventstore.BuildEntryFilter().
			Matching().
			ForOwners(a.owner).
			AndAnyKindOf(kinds[0], kinds[1:]...).
			Finalize()
	} else {
		filter = eventstore.BuildEntryFilter().
			Matching().
			ForOwners(a.owner).
			Finalize()
	}

	storableEntries, _, err := a.archive.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return LogEntriesFrom(storableEntries)
}
