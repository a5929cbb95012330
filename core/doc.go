// Package core defines the domain model for the QA pipeline: documents,
// chunks, vector records, retrieval matches, and the content-addressed ID
// scheme that makes ingestion idempotent.
//
// The package has no dependencies on storage, AI services, or orchestration
// code; those layers depend on core, never the other way around.
package core
