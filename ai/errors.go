package ai

import "errors"

var (
	// ErrEmbeddingService indicates a failure of the embedding provider
	// that persisted through bounded retries. It fails the whole ingestion
	// or query operation it occurred in.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrSynthesisService indicates a failure of the answer synthesis
	// provider.
	ErrSynthesisService = errors.New("synthesis service failure")

	// ErrInvalidMaxAttempts is returned when a retry is requested with a
	// non-positive attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than 0")
)
