package openai

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns scripted responses in order, repeating the last one.
type fakeModel struct {
	responses []string
	calls     int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.responses[i]}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := f.GenerateContent(ctx, []llms.MessageContent{}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func newTestExtractor(responses ...string) (*TopicExtractor, *fakeModel) {
	model := &fakeModel{responses: responses}
	return &TopicExtractor{client: model, logger: slog.Default()}, model
}

func TestExtractTopics(t *testing.T) {
	ctx := context.Background()

	t.Run("parses plain JSON", func(t *testing.T) {
		e, _ := newTestExtractor(`{"topics": ["concurrency", "worker pools"]}`)
		topics, err := e.ExtractTopics(ctx, "some chunk")
		require.NoError(t, err)
		assert.Equal(t, []string{"concurrency", "worker pools"}, topics)
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		e, _ := newTestExtractor("```json\n{\"topics\": [\"storage\"]}\n```")
		topics, err := e.ExtractTopics(ctx, "some chunk")
		require.NoError(t, err)
		assert.Equal(t, []string{"storage"}, topics)
	})

	t.Run("lowercases and drops blanks", func(t *testing.T) {
		e, _ := newTestExtractor(`{"topics": ["Go Runtime", "  ", "CHANNELS"]}`)
		topics, err := e.ExtractTopics(ctx, "some chunk")
		require.NoError(t, err)
		assert.Equal(t, []string{"go runtime", "channels"}, topics)
	})

	t.Run("caps topic count", func(t *testing.T) {
		e, _ := newTestExtractor(`{"topics": ["a", "b", "c", "d", "e", "f", "g"]}`)
		topics, err := e.ExtractTopics(ctx, "some chunk")
		require.NoError(t, err)
		assert.Len(t, topics, maxTopicsPerChunk)
	})

	t.Run("retries on malformed JSON", func(t *testing.T) {
		e, model := newTestExtractor(
			"not json at all",
			`{"topics": ["recovered"]}`,
		)
		topics, err := e.ExtractTopics(ctx, "some chunk")
		require.NoError(t, err)
		assert.Equal(t, []string{"recovered"}, topics)
		assert.Equal(t, 2, model.calls)
	})

	t.Run("gives up after persistent malformed JSON", func(t *testing.T) {
		e, model := newTestExtractor("still not json")
		_, err := e.ExtractTopics(ctx, "some chunk")
		require.Error(t, err)
		assert.Equal(t, 3, model.calls)
	})

	t.Run("empty topics list is valid", func(t *testing.T) {
		e, _ := newTestExtractor(`{"topics": []}`)
		topics, err := e.ExtractTopics(ctx, "some chunk")
		require.NoError(t, err)
		assert.Empty(t, topics)
	})
}

func TestBuildSynthesisPrompt(t *testing.T) {
	prompt := buildSynthesisPrompt("retrieved context here", "what is the answer?")
	assert.Contains(t, prompt, "retrieved context here")
	assert.Contains(t, prompt, "Question: what is the answer?")
	assert.Contains(t, prompt, "Helpful Answer:")
}

func TestSynthesizerWithFakeModel(t *testing.T) {
	model := &fakeModel{responses: []string{"  the answer is 42  "}}
	s := &Synthesizer{client: model, logger: slog.Default()}

	answer, err := s.Synthesize(context.Background(), "context", "question")
	require.NoError(t, err)
	assert.Equal(t, "the answer is 42", answer)
}
