package journal

import (
	"errors"
)

var (
	ErrEmptyTableNameSupplied      = errors.New("empty journal table name supplied")
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrConcurrencyConflict         = errors.New("concurrency conflict, the journal changed since it was queried")
	ErrQueryingEventsFailed        = errors.New("querying events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStorableEventFailed = errors.New("building storable event failed")
	ErrBuildingQueryFailed         = errors.New("building query failed")
	ErrAppendingEventFailed        = errors.New("appending event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrCreatingSchemaFailed        = errors.New("creating journal schema failed")
)

// MaxSequenceNumberUint is the highest sequence number among the events matched by a Filter.
type MaxSequenceNumberUint = uint
