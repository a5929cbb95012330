// Package badger provides a persistent local VectorIndex on BadgerDB.
// Records are serialized with the MUS format and scored by an exhaustive
// cosine scan, which is adequate for the corpus sizes a single local index
// holds.
package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

// mergeRetries bounds retries of a metadata merge that lost a write
// conflict against a concurrent merge to the same ID (last-write-wins).
const mergeRetries = 3

// Config holds configuration for the badger-backed index.
type Config struct {
	// Path is the database directory. Ignored when InMemory is true.
	Path string

	// InMemory runs badger without disk persistence (tests).
	InMemory bool

	// Dimension is the fixed embedding dimensionality. Zero disables the
	// check.
	Dimension int
}

// Store is a persistent vector index backed by BadgerDB.
type Store struct {
	db        *badger.DB
	dimension int
	logger    *slog.Logger
}

var _ index.VectorIndex = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a badger-backed index at the configured path, creating
// the directory if it doesn't exist.
func OpenStore(cfg Config) (*Store, error) {
	logger := slog.Default().With("component", "badger-index")

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(cfg.Path)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(cfg.Path, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(cfg.Path)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", index.ErrService, err)
	}

	return &Store{
		db:        db,
		dimension: cfg.Dimension,
		logger:    logger,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert writes all records in a single transaction, so either every
// record is applied or none is.
func (s *Store) Upsert(ctx context.Context, records []core.VectorRecord) error {
	for _, record := range records {
		if err := core.ValidateDimension(record.Embedding, s.dimension); err != nil {
			return err
		}
	}

	err := s.db.Update(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := tx.Set(makeRecordKey(record.ID), MarshalRecord(record)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: upsert: %w", index.ErrService, err)
	}
	return nil
}

// Query scans all records, scores them by cosine similarity, and returns
// the top matches ordered by score descending with ties broken by
// ascending ID.
func (s *Store) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]core.RetrievalMatch, error) {
	if err := core.ValidateTopK(topK); err != nil {
		return nil, err
	}
	if err := core.ValidateDimension(vector, s.dimension); err != nil {
		return nil, err
	}

	var matches []core.RetrievalMatch
	err := s.db.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record core.VectorRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = UnmarshalRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if len(record.Embedding) == 0 {
				continue
			}

			match := core.RetrievalMatch{
				ChunkID: record.ID,
				Score:   cosineSimilarity(vector, record.Embedding),
			}
			if includeMetadata {
				match.Metadata = record.Metadata
			}
			matches = append(matches, match)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query: %w", index.ErrService, err)
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

// MergeMetadata merges patch into the stored record inside a write
// transaction. Concurrent merges to the same ID can conflict; the losing
// transaction is retried so the outcome is last-write-wins.
func (s *Store) MergeMetadata(ctx context.Context, id string, patch core.Metadata) error {
	key := makeRecordKey(id)

	var lastErr error
	for attempt := 0; attempt < mergeRetries; attempt++ {
		lastErr = s.db.Update(func(tx *badger.Txn) error {
			item, err := tx.Get(key)
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: id %q", index.ErrNotFound, id)
			}
			if err != nil {
				return err
			}

			var record core.VectorRecord
			if err := item.Value(func(val []byte) error {
				record, err = UnmarshalRecord(val)
				return err
			}); err != nil {
				return err
			}

			record.Metadata = record.Metadata.Merge(patch)
			return tx.Set(key, MarshalRecord(record))
		})
		if !errors.Is(lastErr, badger.ErrConflict) {
			break
		}
	}

	if lastErr != nil {
		if errors.Is(lastErr, index.ErrNotFound) {
			return lastErr
		}
		return fmt.Errorf("%w: merge metadata: %w", index.ErrService, lastErr)
	}
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
