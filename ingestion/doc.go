// Package ingestion provides pipeline orchestration for indexing documents.
//
// The Pipeline type manages the ingestion workflow for a document:
//   - Splitting the text into overlapping chunks
//   - Generating embeddings in one logical batch
//   - Upserting all records into the vector index in a single call
//   - Scheduling asynchronous topic enrichment per chunk
//
// Enrichment runs on a bounded worker pool and is best-effort: task errors
// are logged with the chunk identity but never fail the ingestion
// operation, and the response is emitted before enrichment completes. The
// returned Batch handle lets callers observe completion when they need to.
package ingestion
