package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := DocumentID("the quick brown fox")
		b := DocumentID("the quick brown fox")
		assert.Equal(t, a, b)
		assert.Len(t, a, 32) // 128-bit hash, hex encoded
	})

	t.Run("different text different ID", func(t *testing.T) {
		assert.NotEqual(t, DocumentID("alpha"), DocumentID("beta"))
	})
}

func TestChunkID(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := ChunkID("doc1", "some chunk text")
		b := ChunkID("doc1", "some chunk text")
		assert.Equal(t, a, b)
	})

	t.Run("same text in different documents gets distinct IDs", func(t *testing.T) {
		a := ChunkID("doc1", "identical text")
		b := ChunkID("doc2", "identical text")
		assert.NotEqual(t, a, b)
	})

	t.Run("separator prevents boundary collisions", func(t *testing.T) {
		a := ChunkID("ab", "c")
		b := ChunkID("a", "bc")
		assert.NotEqual(t, a, b)
	})
}

func TestMetadataMerge(t *testing.T) {
	base := Metadata{Text: "original text"}

	t.Run("topics patch preserves text", func(t *testing.T) {
		merged := base.Merge(Metadata{Topics: []string{"go", "testing"}})
		assert.Equal(t, "original text", merged.Text)
		assert.Equal(t, []string{"go", "testing"}, merged.Topics)
	})

	t.Run("zero fields leave existing values", func(t *testing.T) {
		withTopics := base.Merge(Metadata{Topics: []string{"go"}})
		merged := withTopics.Merge(Metadata{})
		assert.Equal(t, "original text", merged.Text)
		assert.Equal(t, []string{"go"}, merged.Topics)
	})

	t.Run("text patch preserves topics", func(t *testing.T) {
		withTopics := base.Merge(Metadata{Topics: []string{"go"}})
		merged := withTopics.Merge(Metadata{Text: "updated"})
		assert.Equal(t, "updated", merged.Text)
		assert.Equal(t, []string{"go"}, merged.Topics)
	})

	t.Run("receiver is not modified", func(t *testing.T) {
		_ = base.Merge(Metadata{Text: "changed", Topics: []string{"x"}})
		assert.Equal(t, "original text", base.Text)
		assert.Nil(t, base.Topics)
	})
}

func TestNormalizeASCII(t *testing.T) {
	t.Run("printable ASCII passes through", func(t *testing.T) {
		input := "Hello, World! 123 ~"
		assert.Equal(t, input, NormalizeASCII(input))
	})

	t.Run("non-ASCII runes become single spaces", func(t *testing.T) {
		assert.Equal(t, "caf  latte", NormalizeASCII("café latte"))
		assert.Equal(t, "a b", NormalizeASCII("a\nb"))
		assert.Equal(t, "x y", NormalizeASCII("x\ty"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := NormalizeASCII("naïve\r\napproach — dashes")
		require.Equal(t, once, NormalizeASCII(once))
	})

	t.Run("length in bytes is preserved for single-byte input", func(t *testing.T) {
		input := "line1\nline2\tend"
		assert.Len(t, NormalizeASCII(input), len(input))
	})
}
