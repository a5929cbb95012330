package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// idSeparator keeps the document ID and chunk text from colliding when
// concatenated for hashing ("ab"+"c" vs "a"+"bc").
const idSeparator = "\x1e"

// DocumentID generates a deterministic ID from a document's raw text using
// BLAKE2b hashing. Re-ingesting the same document always produces the same
// ID, which makes ingestion idempotent.
func DocumentID(rawText string) string {
	return contentHash(rawText)
}

// ChunkID generates a deterministic ID for a chunk from its source document
// ID and its normalized text. Identical chunk text in two different
// documents maps to two distinct IDs.
func ChunkID(documentID, text string) string {
	return contentHash(documentID + idSeparator + text)
}

func contentHash(s string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// Document is a unit of uploaded content. It is transient: once split into
// chunks it is discarded.
type Document struct {
	ID      string
	RawText string
}

// Chunk is a bounded, overlapping slice of a document's text. It is the
// unit of embedding and retrieval.
type Chunk struct {
	ID               string
	Text             string
	SourceDocumentID string
	Ordinal          int
}

// Metadata is the payload stored alongside a vector record.
// Topics is populated asynchronously by the enricher after ingestion.
type Metadata struct {
	Text   string
	Topics []string
}

// Merge applies the non-zero fields of patch onto m and returns the result.
// The receiver is not modified.
func (m Metadata) Merge(patch Metadata) Metadata {
	out := m
	if patch.Text != "" {
		out.Text = patch.Text
	}
	if patch.Topics != nil {
		out.Topics = patch.Topics
	}
	return out
}

// VectorRecord is an embedding plus metadata as stored in a vector index.
type VectorRecord struct {
	ID        string
	Embedding []float32
	Metadata  Metadata
}

// RetrievalMatch is a single scored result from a vector index query.
type RetrievalMatch struct {
	ChunkID  string
	Score    float32
	Metadata Metadata
}

// Answer is the result of a retrieval-augmented question: the synthesized
// text plus the ordered evidence it was built from.
type Answer struct {
	Text     string
	Evidence []RetrievalMatch
}

// Role identifies the author of a conversation turn.
type Role int

const (
	// RoleUser represents the person asking questions.
	RoleUser Role = iota + 1
	// RoleAssistant represents the answering system.
	RoleAssistant
)

// ConversationTurn is one exchange in a session. Turns are owned by the
// caller; the pipeline holds no state across them.
type ConversationTurn struct {
	Role     Role
	Text     string
	Evidence []RetrievalMatch
}
