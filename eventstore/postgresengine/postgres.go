package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/campus-resource-hub/eventstore"
	"github.com/AntonStoeckl/campus-resource-hub/eventstore/postgresengine/internal/adapters"
)

const (
	defaultTableName               = "action_log"
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEntryFailed = "failed to build storable entry from database row"
	logMsgDBExecFailed             = "database execution failed during entry append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgNotAllEntriesAppended    = "fewer rows affected than entries appended"
	logMsgQueryCompleted           = "query completed"
	logMsgEntriesAppended          = "entries appended"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "archive operation: "
	logAttrError                   = "error"
	logAttrQuery                   = "query"
	logAttrKind                    = "kind"
	logAttrEntryCount              = "entry_count"
	logAttrDurationMS              = "duration_ms"
	logAttrRowsAffected            = "rows_affected"
	logActionQuery                 = "query"
	logActionAppend                = "append"
	colKind                        = "kind"
	colOwner                       = "owner"
	colOccurredAt                  = "occurred_at"
	colPayload                     = "payload"
	colMetadata                    = "metadata"
	colSequenceNumber              = "sequence_number"
	dialectPostgres                = "postgres"
	castJsonb                      = "?::jsonb"
	labelTable                     = "table"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// Archive stores action log entries in a PostgreSQL table.
// It leverages a database adapter and supports an optional logger and a configurable table name.
type Archive struct {
	db        adapters.DBAdapter
	tableName string
	logger    eventstore.Logger
	metrics   eventstore.MetricsCollector
	tracing   eventstore.TracingCollector
}

type queryResultRow struct {
	kind           string
	owner          string
	occurredAt     time.Time
	payload        []byte
	metadata       []byte
	sequenceNumber eventstore.MaxSequenceNumberUint
}

// NewArchiveFromPGXPool creates a new Archive using a pgx Pool with optional configuration.
func NewArchiveFromPGXPool(db *pgxpool.Pool, options ...Option) (*Archive, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewPGXAdapter(db), options...)
}

// NewArchiveFromPGXPoolWithReplica creates a new Archive that appends to the primary pool.
// Queries use the replica when their context carries eventstore.WithReplicaReads.
func NewArchiveFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Archive, error) {
	if db == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewArchiveFromSQLDB creates a new Archive using a sql.DB with optional configuration.
func NewArchiveFromSQLDB(db *sql.DB, options ...Option) (*Archive, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewSQLAdapter(db), options...)
}

// NewArchiveFromSQLX creates a new Archive using a sqlx.DB with optional configuration.
func NewArchiveFromSQLX(db *sqlx.DB, options ...Option) (*Archive, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewSQLXAdapter(db), options...)
}

func newArchive(db adapters.DBAdapter, options ...Option) (*Archive, error) {
	a := &Archive{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Query retrieves entries from the Postgres archive based on the provided eventstore.Filter criteria
// and returns them as eventstore.StorableEntries in sequence order,
// as well as the highest sequence number among them at the time of the query.
func (a *Archive) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEntries,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, measurement := a.instrumentation().Begin(ctx, eventstore.OperationQuery, a.metricLabels())
	entries, maxSequenceNumber, err := a.query(ctx, filter)
	measurement.End(ctx, len(entries), err)

	return entries, maxSequenceNumber, err
}

func (a *Archive) query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEntries,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEntries

	sqlQuery, buildQueryErr := a.buildSelectQuery(filter)
	if buildQueryErr != nil {
		a.logError(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		return empty, 0, buildQueryErr
	}

	rows, duration, queryErr := a.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return empty, 0, queryErr
	}
	defer a.closeRows(rows)

	entries, maxSequenceNumber, scanErr := a.processQueryResults(rows)
	if scanErr != nil {
		return empty, 0, scanErr
	}

	a.logOperation(
		logMsgQueryCompleted,
		logAttrEntryCount, len(entries),
		logAttrDurationMS, durationToMilliseconds(duration))

	return entries, maxSequenceNumber, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (a *Archive) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	queryDuration,
	error,
) {

	start := time.Now()
	rows, queryErr := a.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	a.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		a.logError(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(eventstore.ErrQueryingEntriesFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows closes database rows and logs any errors.
func (a *Archive) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil && a.logger != nil {
		a.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// processQueryResults converts database rows to storable entries.
func (a *Archive) processQueryResults(rows adapters.DBRows) (
	eventstore.StorableEntries,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	var empty eventstore.StorableEntries
	result := queryResultRow{}
	entries := make(eventstore.StorableEntries, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(
			&result.kind,
			&result.owner,
			&result.occurredAt,
			&result.payload,
			&result.metadata,
			&result.sequenceNumber,
		)
		if rowScanErr != nil {
			a.logError(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			return empty, 0, errors.Join(eventstore.ErrScanningDBRowFailed, rowScanErr)
		}

		entry, buildStorableErr := eventstore.BuildStorableEntry(
			result.kind,
			result.owner,
			result.occurredAt,
			result.payload,
			result.metadata,
		)
		if buildStorableErr != nil {
			a.logError(logMsgBuildStorableEntryFailed, logAttrError, buildStorableErr.Error(), logAttrKind, result.kind)
			return empty, 0, errors.Join(eventstore.ErrBuildingStorableEntryFailed, buildStorableErr)
		}

		entries = append(entries, entry)
		maxSequenceNumber = result.sequenceNumber
	}

	if iterErr := rows.Err(); iterErr != nil {
		a.logError(logMsgScanRowFailed, logAttrError, iterErr.Error())
		return empty, 0, errors.Join(eventstore.ErrScanningDBRowFailed, iterErr)
	}

	return entries, maxSequenceNumber, nil
}

// Append appends one or multiple eventstore.StorableEntry(s) to the Postgres archive with a single INSERT statement.
func (a *Archive) Append(
	ctx context.Context,
	entry eventstore.StorableEntry,
	additionalEntries ...eventstore.StorableEntry,
) error {

	allEntries := append(eventstore.StorableEntries{entry}, additionalEntries...)

	ctx, measurement := a.instrumentation().Begin(ctx, eventstore.OperationAppend, a.metricLabels())
	err := a.append(ctx, allEntries)
	measurement.End(ctx, len(allEntries), err)

	return err
}

func (a *Archive) append(ctx context.Context, allEntries eventstore.StorableEntries) error {
	sqlQuery, buildQueryErr := a.buildInsertQuery(allEntries)
	if buildQueryErr != nil {
		a.logError(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEntryCount, len(allEntries))
		return buildQueryErr
	}

	rowsAffected, duration, execErr := a.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected < int64(len(allEntries)) {
		a.logError(logMsgNotAllEntriesAppended, logAttrEntryCount, len(allEntries), logAttrRowsAffected, rowsAffected)
		return eventstore.ErrNotAllEntriesAppended
	}

	a.logOperation(
		logMsgEntriesAppended,
		logAttrEntryCount, len(allEntries),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return nil
}

// executeAppendQuery executes the SQL append query and returns rows affected and duration.
func (a *Archive) executeAppendQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	result, execErr := a.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	a.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		a.logError(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		return 0, duration, errors.Join(eventstore.ErrAppendingEntryFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		a.logError(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		return 0, duration, errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

func (a *Archive) instrumentation() eventstore.Instrumentation {
	return eventstore.NewInstrumentation(a.metrics, a.tracing)
}

func (a *Archive) metricLabels() map[string]string {
	return map[string]string{labelTable: a.tableName}
}

func (a *Archive) buildSelectQuery(filter eventstore.Filter) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(a.tableName).
		Select(colKind, colOwner, colOccurredAt, colPayload, colMetadata, colSequenceNumber).
		Order(goqu.I(colSequenceNumber).Asc())

	selectStmt = a.addWhereClause(filter, selectStmt)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (a *Archive) buildInsertQuery(entries eventstore.StorableEntries) (sqlQueryString, error) {
	rows := make([]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, goqu.Record{
			colKind:       entry.Kind,
			colOwner:      entry.Owner,
			colOccurredAt: entry.OccurredAt,
			colPayload:    goqu.L(castJsonb, string(entry.PayloadJSON)),
			colMetadata:   goqu.L(castJsonb, string(entry.MetadataJSON)),
		})
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(a.tableName).
		Rows(rows...)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (a *Archive) addWhereClause(filter eventstore.Filter, selectStmt *goqu.SelectDataset) *goqu.SelectDataset {
	itemsExpressions := make([]goqu.Expression, 0)

	for _, item := range filter.Items() {
		itemExpressions := make([]goqu.Expression, 0, 2)

		if len(item.Kinds()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colKind).In(item.Kinds()))
		}

		if len(item.Owners()) > 0 {
			itemExpressions = append(itemExpressions, goqu.C(colOwner).In(item.Owners()))
		}

		itemsExpressions = append(itemsExpressions, goqu.And(itemExpressions...))
	}

	occurredAtExpressions := make([]goqu.Expression, 0)

	if !filter.From().IsZero() {
		occurredAtExpressions = append(occurredAtExpressions, goqu.C(colOccurredAt).Gte(filter.From()))
	}

	if !filter.Until().IsZero() {
		occurredAtExpressions = append(occurredAtExpressions, goqu.C(colOccurredAt).Lte(filter.Until()))
	}

	return selectStmt.Where(
		goqu.And(
			goqu.Or(itemsExpressions...),
			goqu.And(occurredAtExpressions...),
		),
	)
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (a *Archive) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if a.logger != nil {
		a.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (a *Archive) logOperation(action string, args ...any) {
	if a.logger != nil {
		a.logger.Info(logMsgOperation+action, args...)
	}
}

func (a *Archive) logError(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
