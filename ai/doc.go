// Package ai provides abstractions for the AI services used by the QA
// pipeline: text embedding, topic extraction, and answer synthesis.
//
// The package defines interfaces only; implementations live in
// sub-packages:
//
//   - ai/openai: production implementation on OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in the implementation packages return interface
// types to enforce abstraction. Mock constructors return concrete types so
// tests can inject behavior and assert on call counts.
//
// BatchingEmbedder is the embedding client used by the pipeline: it wraps
// any Embedder with input normalization, batch-size capping, and bounded
// retry, so provider implementations stay thin.
package ai
