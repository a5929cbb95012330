package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/CihadCengiz/ai-enhanced-qa-system/ai/mock"
	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index/memory"
	"github.com/CihadCengiz/ai-enhanced-qa-system/splitter"
)

type pipelineFixture struct {
	store     *memory.Store
	embedder  *mock.MockEmbedder
	extractor *mock.MockTopicExtractor
	enricher  *Enricher
	pipeline  *Pipeline
}

func newPipelineFixture(t *testing.T, opts ...Option) *pipelineFixture {
	t.Helper()

	store := memory.NewStore(memory.Config{Dimension: mock.DefaultDimension})
	embedder := mock.NewMockEmbedder()
	extractor := mock.NewMockTopicExtractor()

	enricher, err := NewEnricher(store, extractor, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(enricher.Release)

	pipeline, err := NewPipeline(embedder, store, enricher, opts...)
	require.NoError(t, err)

	return &pipelineFixture{
		store:     store,
		embedder:  embedder,
		extractor: extractor,
		enricher:  enricher,
		pipeline:  pipeline,
	}
}

func TestNewPipeline(t *testing.T) {
	f := newPipelineFixture(t)

	t.Run("requires embedder", func(t *testing.T) {
		_, err := NewPipeline(nil, f.store, f.enricher)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("requires index", func(t *testing.T) {
		_, err := NewPipeline(f.embedder, nil, f.enricher)
		assert.ErrorIs(t, err, ErrIndexRequired)
	})

	t.Run("requires enricher", func(t *testing.T) {
		_, err := NewPipeline(f.embedder, f.store, nil)
		assert.ErrorIs(t, err, ErrEnricherRequired)
	})

	t.Run("rejects invalid chunking", func(t *testing.T) {
		_, err := NewPipeline(f.embedder, f.store, f.enricher, WithChunking(10, 10))
		assert.ErrorIs(t, err, core.ErrConfiguration)
	})
}

func TestPipelineIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("splits embeds and upserts", func(t *testing.T) {
		f := newPipelineFixture(t, WithChunking(32, 8))
		text := strings.Repeat("the quick brown fox jumps over ", 8)

		result, err := f.pipeline.Ingest(ctx, text)
		require.NoError(t, err)

		expected, err := splitter.Split(core.DocumentID(text), core.NormalizeASCII(text), 32, 8)
		require.NoError(t, err)

		assert.Equal(t, core.DocumentID(text), result.DocumentID)
		assert.Equal(t, len(expected), result.ChunkCount)
		assert.Equal(t, len(expected), f.store.Len())

		for _, chunk := range expected {
			record, ok := f.store.Get(chunk.ID)
			require.True(t, ok, "chunk %s should be upserted", chunk.ID)
			assert.Equal(t, chunk.Text, record.Metadata.Text)
			assert.Len(t, record.Embedding, mock.DefaultDimension)
		}
	})

	t.Run("ingestion is idempotent", func(t *testing.T) {
		f := newPipelineFixture(t, WithChunking(32, 8))
		text := strings.Repeat("idempotent ingestion keeps one copy ", 5)

		first, err := f.pipeline.Ingest(ctx, text)
		require.NoError(t, err)
		first.Enrichment.Wait()
		countAfterFirst := f.store.Len()

		second, err := f.pipeline.Ingest(ctx, text)
		require.NoError(t, err)
		second.Enrichment.Wait()

		assert.Equal(t, first.DocumentID, second.DocumentID)
		assert.Equal(t, countAfterFirst, f.store.Len())
	})

	t.Run("enrichment merges topics after completion", func(t *testing.T) {
		f := newPipelineFixture(t, WithChunking(64, 16))
		text := "Concurrency in Go is built around goroutines and channels. " +
			"Worker pools bound the number of concurrent tasks."

		result, err := f.pipeline.Ingest(ctx, text)
		require.NoError(t, err)

		result.Enrichment.Wait()
		assert.Equal(t, result.ChunkCount, result.Enrichment.Succeeded())
		assert.Equal(t, 0, result.Enrichment.Failed())

		expected, err := splitter.Split(core.DocumentID(text), core.NormalizeASCII(text), 64, 16)
		require.NoError(t, err)
		for _, chunk := range expected {
			record, ok := f.store.Get(chunk.ID)
			require.True(t, ok)
			assert.NotEmpty(t, record.Metadata.Topics, "chunk %s should be enriched", chunk.ID)
			assert.Equal(t, chunk.Text, record.Metadata.Text, "text must survive enrichment")
		}
	})

	t.Run("empty document rejected", func(t *testing.T) {
		f := newPipelineFixture(t)
		_, err := f.pipeline.Ingest(ctx, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidArgument)
		assert.ErrorIs(t, err, core.ErrEmptyDocument)
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("embedding failure aborts with nothing committed", func(t *testing.T) {
		f := newPipelineFixture(t, WithChunking(32, 8))
		f.embedder.EmbedBatchFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("embedding service down")
		}

		_, err := f.pipeline.Ingest(ctx, strings.Repeat("doomed document text ", 6))
		require.Error(t, err)
		assert.Equal(t, 0, f.store.Len())
		assert.Equal(t, 0, f.extractor.CallCount())
	})

	t.Run("embedding count mismatch aborts", func(t *testing.T) {
		f := newPipelineFixture(t, WithChunking(32, 8))
		f.embedder.EmbedBatchFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			vectors := make([][]float32, len(texts)-1)
			for i := range vectors {
				vectors[i] = make([]float32, mock.DefaultDimension)
			}
			return vectors, nil
		}

		_, err := f.pipeline.Ingest(ctx, strings.Repeat("mismatched embedding counts ", 6))
		require.Error(t, err)
		assert.ErrorIs(t, err, ai.ErrEmbeddingService)
		assert.Equal(t, 0, f.store.Len())
	})
}
