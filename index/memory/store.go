// Package memory provides an in-process VectorIndex backed by a map and
// exhaustive cosine scoring. It is the default for tests and small local
// corpora; persistent and remote backends live in index/badger and
// index/pinecone.
package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

// Config holds configuration for the in-memory index.
type Config struct {
	// Dimension is the fixed embedding dimensionality. Zero disables the
	// check (the first upserted record then pins it implicitly).
	Dimension int
}

// Store is an in-memory vector index.
type Store struct {
	mu        sync.RWMutex
	records   map[string]core.VectorRecord
	dimension int
	closed    bool
}

var _ index.VectorIndex = (*Store)(nil)

// NewStore creates an empty in-memory index.
func NewStore(cfg Config) *Store {
	return &Store{
		records:   make(map[string]core.VectorRecord),
		dimension: cfg.Dimension,
	}
}

// Upsert writes records, overwriting any existing record with the same ID.
func (s *Store) Upsert(ctx context.Context, records []core.VectorRecord) error {
	for _, record := range records {
		if err := core.ValidateDimension(record.Embedding, s.dimension); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return index.ErrClosed
	}
	for _, record := range records {
		s.records[record.ID] = record
	}
	return nil
}

// Query returns up to topK matches ordered by cosine similarity descending,
// ties broken by ascending ID.
func (s *Store) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]core.RetrievalMatch, error) {
	if err := core.ValidateTopK(topK); err != nil {
		return nil, err
	}
	if err := core.ValidateDimension(vector, s.dimension); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, index.ErrClosed
	}

	matches := make([]core.RetrievalMatch, 0, len(s.records))
	for id, record := range s.records {
		match := core.RetrievalMatch{
			ChunkID: id,
			Score:   cosineSimilarity(vector, record.Embedding),
		}
		if includeMetadata {
			match.Metadata = record.Metadata
		}
		matches = append(matches, match)
	}

	slices.SortFunc(matches, func(a, b core.RetrievalMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(a.ChunkID, b.ChunkID)
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// MergeMetadata merges patch into the stored record's metadata. The
// embedding is untouched. The whole read-modify-write runs under the store
// lock, so merges are per-ID atomic and last-write-wins.
func (s *Store) MergeMetadata(ctx context.Context, id string, patch core.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return index.ErrClosed
	}

	record, ok := s.records[id]
	if !ok {
		return fmt.Errorf("%w: id %q", index.ErrNotFound, id)
	}
	record.Metadata = record.Metadata.Merge(patch)
	s.records[id] = record
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns a stored record by ID, primarily for tests.
func (s *Store) Get(id string) (core.VectorRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	return record, ok
}

// Close marks the store closed. Subsequent operations fail with ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// cosineSimilarity computes the cosine of the angle between a and b.
// Mismatched or zero-norm vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
