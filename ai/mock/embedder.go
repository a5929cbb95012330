package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync/atomic"
)

// DefaultDimension is the dimensionality of vectors produced by the mock
// embedder's default behavior.
const DefaultDimension = 32

// MockEmbedder is a test double for ai.Embedder.
// It allows custom behavior injection via function fields. Function fields
// must be set before the embedder is shared across goroutines; calls are
// safe for concurrent use.
type MockEmbedder struct {
	// EmbedQueryFunc is called by EmbedQuery if set.
	// If nil, uses default deterministic behavior.
	EmbedQueryFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedBatchFunc is called by EmbedBatch if set.
	// If nil, uses default deterministic behavior.
	EmbedBatchFunc func(ctx context.Context, texts []string) ([][]float32, error)

	callCount atomic.Int64
}

// NewMockEmbedder creates a mock embedder with default deterministic
// behavior. Returns the concrete type to allow test assertions.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// EmbedQuery generates a deterministic embedding based on text hash.
func (m *MockEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	m.callCount.Add(1)

	if m.EmbedQueryFunc != nil {
		return m.EmbedQueryFunc(ctx, text)
	}

	return DeterministicVector(text, DefaultDimension), nil
}

// EmbedBatch generates deterministic embeddings for multiple texts.
func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.callCount.Add(1)

	if m.EmbedBatchFunc != nil {
		return m.EmbedBatchFunc(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = DeterministicVector(text, DefaultDimension)
	}
	return vectors, nil
}

// CallCount returns the number of times any method was called.
func (m *MockEmbedder) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockEmbedder) Reset() {
	m.callCount.Store(0)
	m.EmbedQueryFunc = nil
	m.EmbedBatchFunc = nil
}

// DeterministicVector creates a deterministic unit-norm embedding from
// text. The same text always produces the same vector, so tests can embed
// the same content twice and get an exact similarity match.
func DeterministicVector(text string, dim int) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	vector := make([]float32, dim)
	for i := 0; i < dim; i++ {
		seed = seed*1664525 + 1013904223 // LCG constants
		vector[i] = float32(seed%1000) / 1000.0
	}

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}
