package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

// defaultTaskTimeout bounds a single enrichment task so a stalled
// extraction call cannot hold a pool worker indefinitely.
const defaultTaskTimeout = 30 * time.Second

// Enricher computes topic metadata per chunk and merges it into the
// corresponding index record. Tasks run on a bounded worker pool sized by
// configuration, never by document size; a task's failure is logged with
// the chunk identity and never reaches sibling tasks or the ingestion
// caller.
type Enricher struct {
	index       index.VectorIndex
	extractor   ai.TopicExtractor
	pool        *ants.Pool
	taskTimeout time.Duration
	logger      *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher) error

// WithPoolSize sets the worker pool size for concurrent enrichment.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) EnricherOption {
	return func(e *Enricher) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// WithTaskTimeout sets the per-task timeout for the extraction call.
func WithTaskTimeout(timeout time.Duration) EnricherOption {
	return func(e *Enricher) error {
		if timeout > 0 {
			e.taskTimeout = timeout
		}
		return nil
	}
}

// WithEnricherLogger sets a custom logger.
// Default is slog.Default().
func WithEnricherLogger(logger *slog.Logger) EnricherOption {
	return func(e *Enricher) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEnricher creates a new metadata enricher.
func NewEnricher(idx index.VectorIndex, extractor ai.TopicExtractor, opts ...EnricherOption) (*Enricher, error) {
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Enricher{
		index:       idx,
		extractor:   extractor,
		pool:        pool,
		taskTimeout: defaultTaskTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(e); optErr != nil {
			e.Release()
			return nil, optErr
		}
	}

	return e, nil
}

// Release releases the worker pool.
// The enricher should not be used after calling Release.
func (e *Enricher) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Batch is a completion handle for the enrichment tasks scheduled for one
// ingestion. Callers may Wait on it for testing and observability; the
// ingestion response never depends on it.
type Batch struct {
	wg        sync.WaitGroup
	succeeded atomic.Int64
	failed    atomic.Int64
}

// Wait blocks until every task scheduled for this batch has finished.
func (b *Batch) Wait() {
	b.wg.Wait()
}

// Succeeded reports how many tasks have merged their metadata so far.
func (b *Batch) Succeeded() int {
	return int(b.succeeded.Load())
}

// Failed reports how many tasks have failed so far.
func (b *Batch) Failed() int {
	return int(b.failed.Load())
}

// EnrichBatch schedules one enrichment task per chunk and returns
// immediately with the batch's completion handle. Submission blocks only
// when the pool's queue is saturated; task failures are logged and counted,
// never propagated.
func (e *Enricher) EnrichBatch(chunks []core.Chunk) *Batch {
	batch := &Batch{}
	batch.wg.Add(len(chunks))

	for _, chunk := range chunks {
		chunk := chunk
		err := e.pool.Submit(func() {
			defer batch.wg.Done()
			e.enrichChunk(chunk, batch)
		})
		if err != nil {
			e.logger.Error("failed to schedule enrichment task", "chunkID", chunk.ID, "err", err)
			batch.failed.Add(1)
			batch.wg.Done()
		}
	}

	return batch
}

func (e *Enricher) enrichChunk(chunk core.Chunk, batch *Batch) {
	ctx, cancel := context.WithTimeout(context.Background(), e.taskTimeout)
	defer cancel()

	topics, err := e.extractor.ExtractTopics(ctx, chunk.Text)
	if err != nil {
		e.logger.Error("topic extraction failed",
			"chunkID", chunk.ID,
			"documentID", chunk.SourceDocumentID,
			"err", err)
		batch.failed.Add(1)
		return
	}

	if err := e.index.MergeMetadata(ctx, chunk.ID, core.Metadata{Topics: topics}); err != nil {
		if errors.Is(err, index.ErrNotFound) {
			// The chunk was never upserted (or was upserted under a
			// different normalization); the enrichment update is lost.
			e.logger.Warn("enrichment target not found, update lost",
				"chunkID", chunk.ID,
				"documentID", chunk.SourceDocumentID)
		} else {
			e.logger.Error("metadata merge failed",
				"chunkID", chunk.ID,
				"documentID", chunk.SourceDocumentID,
				"err", err)
		}
		batch.failed.Add(1)
		return
	}

	batch.succeeded.Add(1)
}
