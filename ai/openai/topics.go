package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxTopicsPerChunk bounds how many labels a single chunk can accumulate.
const maxTopicsPerChunk = 5

// TopicExtractor implements ai.TopicExtractor using OpenAI-compatible chat
// APIs with JSON-mode output.
type TopicExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// topicsResponse is the wrapper structure for the LLM's JSON response.
type topicsResponse struct {
	Topics []string `json:"topics"`
}

// newTopicExtractor is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newTopicExtractor(config *ai.Config) (*TopicExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &TopicExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-topics"),
	}, nil
}

// NewTopicExtractor creates a new topic extractor using the provided
// configuration.
//
// Returns ai.TopicExtractor interface to enforce abstraction.
func NewTopicExtractor(config *ai.Config) (ai.TopicExtractor, error) {
	return newTopicExtractor(config)
}

// ExtractTopics extracts topic labels from text using an LLM.
func (e *TopicExtractor) ExtractTopics(ctx context.Context, text string) ([]string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildTopicsSystemPrompt(maxTopicsPerChunk)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result topicsResponse
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []string{}, nil
		}

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(response.Choices[0].Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing topics response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse topics response after retries", "err", lastErr)
		return nil, lastErr
	}

	topics := make([]string, 0, len(result.Topics))
	for _, topic := range result.Topics {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if topic == "" {
			continue
		}
		topics = append(topics, topic)
		if len(topics) == maxTopicsPerChunk {
			break
		}
	}

	e.logger.Debug("extracted topics", "count", len(topics))
	return topics, nil
}
