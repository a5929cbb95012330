package core

import "errors"

var (
	// ErrConfiguration indicates an invalid configuration value, such as a
	// bad chunk size/overlap pair or an embedding dimension mismatch.
	// Configuration errors are fatal and never retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument indicates an invalid per-request argument, such as
	// a non-positive topK or an empty question.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyDocument indicates an ingestion request with no text.
	ErrEmptyDocument = errors.New("document text cannot be empty")
)
