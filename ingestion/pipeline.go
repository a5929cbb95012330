package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
	"github.com/CihadCengiz/ai-enhanced-qa-system/splitter"
)

// Defaults match the original deployment's splitter settings.
const (
	DefaultChunkSize = 512
	DefaultOverlap   = 200
)

// Pipeline orchestrates document ingestion: split into chunks, embed,
// upsert into the vector index, then schedule asynchronous metadata
// enrichment. The critical path is sequential; enrichment is the only
// source of concurrency and never blocks the ingestion response.
type Pipeline struct {
	embedder  ai.Embedder
	index     index.VectorIndex
	enricher  *Enricher
	chunkSize int
	overlap   int
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithChunking sets the chunk size and overlap used when splitting
// documents. Invalid parameters fail with core.ErrConfiguration.
func WithChunking(chunkSize, overlap int) Option {
	return func(p *Pipeline) error {
		if err := core.ValidateChunking(chunkSize, overlap); err != nil {
			return err
		}
		p.chunkSize = chunkSize
		p.overlap = overlap
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(embedder ai.Embedder, idx index.VectorIndex, enricher *Enricher, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if enricher == nil {
		return nil, ErrEnricherRequired
	}

	p := &Pipeline{
		embedder:  embedder,
		index:     idx,
		enricher:  enricher,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// IngestResult reports a completed ingestion. Enrichment is a completion
// handle for the scheduled metadata tasks; ingestion success does not
// depend on it.
type IngestResult struct {
	DocumentID string
	ChunkCount int
	Enrichment *Batch
}

// Ingest splits documentText into chunks, embeds them in one logical batch,
// upserts all records in a single call, and schedules metadata enrichment
// without waiting for it. Any failure in splitting, embedding, or upserting
// aborts the whole ingestion; nothing is partially committed.
func (p *Pipeline) Ingest(ctx context.Context, documentText string) (*IngestResult, error) {
	if documentText == "" {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidArgument, core.ErrEmptyDocument)
	}

	docID := core.DocumentID(documentText)
	normalized := core.NormalizeASCII(documentText)

	chunks, err := splitter.Split(docID, normalized, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	p.logger.Info("ingesting document", "documentID", docID, "chunks", len(chunks))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		p.logger.Error("error generating embeddings", "documentID", docID, "err", err)
		return nil, err
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: embedding result mismatch, expected %d, received %d",
			ai.ErrEmbeddingService, len(chunks), len(embeddings))
	}

	records := make([]core.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = core.VectorRecord{
			ID:        chunk.ID,
			Embedding: embeddings[i],
			Metadata:  core.Metadata{Text: chunk.Text},
		}
	}

	if err := p.index.Upsert(ctx, records); err != nil {
		p.logger.Error("error upserting records", "documentID", docID, "records", len(records), "err", err)
		return nil, err
	}

	// Fire-and-forget: the response does not wait for enrichment.
	batch := p.enricher.EnrichBatch(chunks)

	return &IngestResult{
		DocumentID: docID,
		ChunkCount: len(chunks),
		Enrichment: batch,
	}, nil
}
