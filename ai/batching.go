package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
)

// BatchingEmbedder wraps an Embedder with the client-side embedding
// contract: inputs are normalized to printable ASCII, batches larger than
// the configured cap are split into multiple provider calls concatenated in
// order, and each provider call is retried with bounded exponential backoff
// before the failure is surfaced as ErrEmbeddingService.
type BatchingEmbedder struct {
	inner          Embedder
	maxBatchSize   int
	maxRetries     int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

var _ Embedder = (*BatchingEmbedder)(nil)

// NewBatchingEmbedder creates a batching wrapper around inner using the
// batch and retry settings from config.
func NewBatchingEmbedder(inner Embedder, config *Config) (*BatchingEmbedder, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: embedder required", core.ErrConfiguration)
	}
	if config.MaxBatchSize < 1 {
		return nil, fmt.Errorf("%w: MaxBatchSize must be at least 1", core.ErrConfiguration)
	}
	if config.MaxRetries < 1 {
		return nil, fmt.Errorf("%w: MaxRetries must be at least 1", core.ErrConfiguration)
	}
	return &BatchingEmbedder{
		inner:          inner,
		maxBatchSize:   config.MaxBatchSize,
		maxRetries:     config.MaxRetries,
		retryBaseDelay: config.RetryBaseDelay,
		logger:         slog.Default().With("component", "batching-embedder"),
	}, nil
}

// EmbedQuery normalizes text and embeds it with retry.
func (b *BatchingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	normalized := core.NormalizeASCII(text)

	var vector []float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vector, err = b.inner.EmbedQuery(ctx, normalized)
		return err
	}, b.maxRetries, b.retryBaseDelay)
	if err != nil {
		b.logger.Error("failed to embed query", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingService, err)
	}

	return vector, nil
}

// EmbedBatch normalizes texts, splits them into sub-batches of at most the
// configured cap, embeds each sub-batch with retry, and concatenates the
// results in input order.
func (b *BatchingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	normalized := make([]string, len(texts))
	for i, text := range texts {
		normalized[i] = core.NormalizeASCII(text)
	}

	vectors := make([][]float32, 0, len(normalized))
	for start := 0; start < len(normalized); start += b.maxBatchSize {
		end := start + b.maxBatchSize
		if end > len(normalized) {
			end = len(normalized)
		}
		batch := normalized[start:end]

		var batchVectors [][]float32
		err := RetryWithBackoff(ctx, func() error {
			var err error
			batchVectors, err = b.inner.EmbedBatch(ctx, batch)
			return err
		}, b.maxRetries, b.retryBaseDelay)
		if err != nil {
			b.logger.Error("failed to embed batch", "offset", start, "size", len(batch), "err", err)
			return nil, fmt.Errorf("%w: %w", ErrEmbeddingService, err)
		}
		if len(batchVectors) != len(batch) {
			return nil, fmt.Errorf("%w: embedding count mismatch, expected %d, received %d",
				ErrEmbeddingService, len(batch), len(batchVectors))
		}

		vectors = append(vectors, batchVectors...)
	}

	return vectors, nil
}
