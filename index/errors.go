package index

import "errors"

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrService indicates a failure of the underlying index service.
	// It fails the whole ingestion or query operation it occurred in.
	ErrService = errors.New("index service failure")

	// ErrClosed indicates that the index has been closed.
	ErrClosed = errors.New("index is closed")

	// ErrSerializationFailed indicates a record serialization or
	// deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
