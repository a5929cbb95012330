package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedQuery generates an embedding for a single query string.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one logical
	// call. The returned slice is one-to-one and order-preserving with the
	// input texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// TopicExtractor computes topic labels for a piece of text. It is the
// analysis capability behind asynchronous metadata enrichment.
// Implementations must be thread-safe for concurrent use.
type TopicExtractor interface {
	// ExtractTopics returns topic labels for the text. An empty slice means
	// no topics were identified.
	ExtractTopics(ctx context.Context, text string) ([]string, error)
}

// Synthesizer produces a natural-language answer from a question and a
// retrieved context. Implementations must be thread-safe for concurrent use.
type Synthesizer interface {
	// Synthesize answers question using only contextText. An empty context
	// is valid and should degrade to a "no information" style answer.
	Synthesize(ctx context.Context, contextText, question string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. The returned services share configuration and are
// safe for concurrent use.
type Provider interface {
	Embedder() Embedder
	TopicExtractor() TopicExtractor
	Synthesizer() Synthesizer

	// Close releases resources held by the provider and its services.
	Close() error
}
