package badger

import (
	"fmt"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
)

// MUS serializers for the stored record. The schema is small and fixed, so
// the serializer is written by hand instead of generated.
var (
	embeddingSer = ord.NewSliceSer[float32](raw.Float32)
	topicsSer    = ord.NewSliceSer[string](ord.String)
)

// MarshalRecord serializes a VectorRecord to bytes.
func MarshalRecord(record core.VectorRecord) []byte {
	size := ord.String.Size(record.ID) +
		embeddingSer.Size(record.Embedding) +
		ord.String.Size(record.Metadata.Text) +
		topicsSer.Size(record.Metadata.Topics)

	bs := make([]byte, size)
	n := ord.String.Marshal(record.ID, bs)
	n += embeddingSer.Marshal(record.Embedding, bs[n:])
	n += ord.String.Marshal(record.Metadata.Text, bs[n:])
	topicsSer.Marshal(record.Metadata.Topics, bs[n:])
	return bs
}

// UnmarshalRecord deserializes a VectorRecord from bytes.
func UnmarshalRecord(bs []byte) (core.VectorRecord, error) {
	var record core.VectorRecord

	id, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return record, fmt.Errorf("%w: %w", index.ErrSerializationFailed, err)
	}
	embedding, m, err := embeddingSer.Unmarshal(bs[n:])
	if err != nil {
		return record, fmt.Errorf("%w: %w", index.ErrSerializationFailed, err)
	}
	n += m
	text, m, err := ord.String.Unmarshal(bs[n:])
	if err != nil {
		return record, fmt.Errorf("%w: %w", index.ErrSerializationFailed, err)
	}
	n += m
	topics, _, err := topicsSer.Unmarshal(bs[n:])
	if err != nil {
		return record, fmt.Errorf("%w: %w", index.ErrSerializationFailed, err)
	}

	record.ID = id
	record.Embedding = embedding
	record.Metadata = core.Metadata{Text: text, Topics: topics}
	return record, nil
}
