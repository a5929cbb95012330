package query

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrSynthesizerRequired is returned when a synthesizer is not provided.
	ErrSynthesizerRequired = errors.New("synthesizer required")
)
