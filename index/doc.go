// Package index defines the vector index contract used by ingestion and
// query. Implementations live in sub-packages:
//
//   - index/memory: in-process store for tests and small local corpora
//   - index/badger: persistent local store on BadgerDB
//   - index/pinecone: remote Pinecone-style index over REST
//
// Embedding dimensionality is fixed per index and checked on every upsert
// and query; a mismatch wraps core.ErrConfiguration since it is a
// deployment error rather than a per-request one.
package index
