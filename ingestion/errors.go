package ingestion

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrIndexRequired is returned when a vector index is not provided.
	ErrIndexRequired = errors.New("vector index required")

	// ErrExtractorRequired is returned when a topic extractor is not provided.
	ErrExtractorRequired = errors.New("topic extractor required")

	// ErrEnricherRequired is returned when an enricher is not provided.
	ErrEnricherRequired = errors.New("enricher required")
)
