package index

import (
	"context"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
)

// VectorIndex is a store supporting similarity search over embeddings plus
// associated metadata. Implementations must be thread-safe and support
// concurrent access.
type VectorIndex interface {
	// Upsert writes records to the index. Upserting a record whose ID is
	// already present overwrites it; concurrent upserts to different IDs do
	// not interfere. The call is all-or-nothing: on error no record is
	// partially applied.
	Upsert(ctx context.Context, records []core.VectorRecord) error

	// Query returns up to topK matches for vector, ordered by similarity
	// score descending with ties broken by ascending ID. Metadata is
	// populated only when includeMetadata is true.
	// Fails wrapping core.ErrInvalidArgument when topK <= 0.
	Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]core.RetrievalMatch, error)

	// MergeMetadata merges the non-zero fields of patch into the metadata
	// of the record with the given ID, leaving its embedding untouched.
	// The merge is per-ID atomic: concurrent merges to different IDs never
	// race, and merges to the same ID are last-write-wins.
	// Fails with ErrNotFound if the ID is absent.
	MergeMetadata(ctx context.Context, id string, patch core.Metadata) error

	// Close closes the index and releases resources.
	Close() error
}
