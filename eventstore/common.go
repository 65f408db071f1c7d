package eventstore

import (
	"errors"
)

var ErrEmptyTableNameSupplied = errors.New("empty table name supplied")
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrBuildingQueryFailed = errors.New("building the query failed")
var ErrQueryingEntriesFailed = errors.New("querying entries failed")
var ErrScanningDBRowFailed = errors.New("scanning a database row failed")
var ErrBuildingStorableEntryFailed = errors.New("building a storable entry from a database row failed")
var ErrAppendingEntryFailed = errors.New("appending entries failed")
var ErrGettingRowsAffectedFailed = errors.New("getting the number of rows affected failed")
var ErrNotAllEntriesAppended = errors.New("fewer rows were affected than entries were appended")

// MaxSequenceNumberUint is a type alias for uint, representing the highest sequence number matched by a query.
type MaxSequenceNumberUint = uint
