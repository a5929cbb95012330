package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

func TestRecordSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := core.VectorRecord{
			ID:        "chunk-1",
			Embedding: []float32{0.25, -1.5, 3.75},
			Metadata: core.Metadata{
				Text:   "some chunk text",
				Topics: []string{"go", "storage"},
			},
		}

		out, err := UnmarshalRecord(MarshalRecord(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("nil topics survive", func(t *testing.T) {
		in := core.VectorRecord{
			ID:        "chunk-2",
			Embedding: []float32{1},
			Metadata:  core.Metadata{Text: "no topics yet"},
		}

		out, err := UnmarshalRecord(MarshalRecord(in))
		require.NoError(t, err)
		assert.Equal(t, in.ID, out.ID)
		assert.Equal(t, in.Embedding, out.Embedding)
		assert.Equal(t, in.Metadata.Text, out.Metadata.Text)
		assert.Empty(t, out.Metadata.Topics)
	})

	t.Run("truncated data fails", func(t *testing.T) {
		bs := MarshalRecord(core.VectorRecord{
			ID:        "chunk-3",
			Embedding: []float32{1, 2, 3},
			Metadata:  core.Metadata{Text: "text"},
		})

		_, err := UnmarshalRecord(bs[:3])
		require.Error(t, err)
		assert.ErrorIs(t, err, index.ErrSerializationFailed)
	})
}
