package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

func openTestStore(t *testing.T, dimension int) *Store {
	t.Helper()
	s, err := OpenStore(Config{InMemory: true, Dimension: dimension})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func record(id string, embedding []float32, text string) core.VectorRecord {
	return core.VectorRecord{
		ID:        id,
		Embedding: embedding,
		Metadata:  core.Metadata{Text: text},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 2)

	require.NoError(t, s.Upsert(ctx, []core.VectorRecord{
		record("east", []float32{1, 0}, "points east"),
		record("north", []float32{0, 1}, "points north"),
	}))

	matches, err := s.Query(ctx, []float32{1, 0}, 2, true)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "east", matches[0].ChunkID)
	assert.Equal(t, "points east", matches[0].Metadata.Text)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.Equal(t, "north", matches[1].ChunkID)
}

func TestStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 2)

	require.NoError(t, s.Upsert(ctx, []core.VectorRecord{
		record("a", []float32{1, 0}, "first"),
	}))
	require.NoError(t, s.Upsert(ctx, []core.VectorRecord{
		record("a", []float32{0, 1}, "second"),
	}))

	matches, err := s.Query(ctx, []float32{0, 1}, 5, true)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "second", matches[0].Metadata.Text)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestStoreQueryOrdering(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 2)

	require.NoError(t, s.Upsert(ctx, []core.VectorRecord{
		record("b", []float32{1, 0}, ""),
		record("a", []float32{2, 0}, ""), // same cosine as b
		record("north", []float32{0, 1}, ""),
	}))

	matches, err := s.Query(ctx, []float32{1, 0}, 3, false)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "a", matches[0].ChunkID)
	assert.Equal(t, "b", matches[1].ChunkID)
	assert.Equal(t, "north", matches[2].ChunkID)
}

func TestStoreQueryValidation(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 2)

	_, err := s.Query(ctx, []float32{1, 0}, 0, false)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	_, err = s.Query(ctx, []float32{1, 0, 0}, 1, false)
	assert.ErrorIs(t, err, core.ErrConfiguration)
}

func TestStoreMergeMetadata(t *testing.T) {
	ctx := context.Background()

	t.Run("merges topics and preserves text and embedding", func(t *testing.T) {
		s := openTestStore(t, 2)
		require.NoError(t, s.Upsert(ctx, []core.VectorRecord{
			record("a", []float32{1, 0}, "chunk text"),
		}))

		require.NoError(t, s.MergeMetadata(ctx, "a", core.Metadata{Topics: []string{"go", "badger"}}))

		matches, err := s.Query(ctx, []float32{1, 0}, 1, true)
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "chunk text", matches[0].Metadata.Text)
		assert.Equal(t, []string{"go", "badger"}, matches[0].Metadata.Topics)
		assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	})

	t.Run("unknown ID fails with not found", func(t *testing.T) {
		s := openTestStore(t, 0)
		err := s.MergeMetadata(ctx, "missing", core.Metadata{Topics: []string{"x"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, index.ErrNotFound)
	})
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := OpenStore(Config{Path: dir, Dimension: 2})
	require.NoError(t, err)
	require.NoError(t, s.Upsert(ctx, []core.VectorRecord{
		record("a", []float32{1, 0}, "persisted"),
	}))
	require.NoError(t, s.Close())

	reopened, err := OpenStore(Config{Path: dir, Dimension: 2})
	require.NoError(t, err)
	defer reopened.Close()

	matches, err := reopened.Query(ctx, []float32{1, 0}, 1, true)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "persisted", matches[0].Metadata.Text)
}
