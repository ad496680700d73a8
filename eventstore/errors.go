package eventstore

import "errors"

// MaxSequenceNumberUint is a type alias for uint, representing the maximum
// sequence number of a dynamic event stream at the time of a Query.
type MaxSequenceNumberUint = uint

var (
	// ErrConcurrencyConflict is returned by Append when the stream advanced
	// past the expected max sequence number, i.e. another writer got there first.
	ErrConcurrencyConflict = errors.New("concurrency conflict: event stream advanced since query")

	// ErrNilDatabaseConnection is returned by the engine constructors for a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed is returned when SQL generation fails.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingEventsFailed is returned when the select statement fails.
	ErrQueryingEventsFailed = errors.New("querying events failed")

	// ErrAppendingEventsFailed is returned when the insert statement fails.
	ErrAppendingEventsFailed = errors.New("appending events failed")

	// ErrScanningDBRowFailed is returned when a result row cannot be scanned.
	ErrScanningDBRowFailed = errors.New("scanning database row failed")
)
