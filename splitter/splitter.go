// Package splitter turns a document's text into an ordered sequence of
// overlapping chunks. Splitting is pure and deterministic: the same text and
// parameters always produce the same chunks with the same IDs, which is what
// makes re-ingestion of an unchanged document idempotent.
package splitter

import (
	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
)

// Split divides text into chunks of at most chunkSize bytes, where each
// chunk after the first begins overlap bytes before the end of the previous
// one. The final chunk may be shorter. No bytes are ever dropped: removing
// the overlapping prefix from every chunk after the first and concatenating
// reconstructs the input exactly. Boundaries may fall mid-token; callers
// wanting stable IDs should pass text already normalized to printable ASCII.
//
// Fails wrapping core.ErrConfiguration unless chunkSize > 0 and
// 0 <= overlap < chunkSize.
func Split(documentID, text string, chunkSize, overlap int) ([]core.Chunk, error) {
	if err := core.ValidateChunking(chunkSize, overlap); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}

	step := chunkSize - overlap
	chunks := make([]core.Chunk, 0, 1+len(text)/step)

	for start := 0; ; start += step {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		piece := text[start:end]
		chunks = append(chunks, core.Chunk{
			ID:               core.ChunkID(documentID, piece),
			Text:             piece,
			SourceDocumentID: documentID,
			Ordinal:          len(chunks),
		})
		if end == len(text) {
			break
		}
	}

	return chunks, nil
}
