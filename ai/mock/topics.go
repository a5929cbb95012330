package mock

import (
	"context"
	"strings"
	"sync/atomic"
)

// MockTopicExtractor is a test double for ai.TopicExtractor.
// It allows custom behavior injection via function fields. Function fields
// must be set before the extractor is shared across goroutines; calls are
// safe for concurrent use, which matters because the enricher invokes the
// extractor from pool workers.
type MockTopicExtractor struct {
	// ExtractTopicsFunc is called by ExtractTopics if set.
	// If nil, uses default simple word extraction.
	ExtractTopicsFunc func(ctx context.Context, text string) ([]string, error)

	callCount atomic.Int64
}

// NewMockTopicExtractor creates a mock topic extractor with default
// behavior. Returns the concrete type to allow test assertions.
func NewMockTopicExtractor() *MockTopicExtractor {
	return &MockTopicExtractor{}
}

// ExtractTopics extracts simple mock topics from text.
// Default behavior: the first three distinct lowercased words.
func (m *MockTopicExtractor) ExtractTopics(ctx context.Context, text string) ([]string, error) {
	m.callCount.Add(1)

	if m.ExtractTopicsFunc != nil {
		return m.ExtractTopicsFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	seen := make(map[string]bool, len(words))
	topics := make([]string, 0, 3)
	for _, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" || seen[word] {
			continue
		}
		seen[word] = true
		topics = append(topics, word)
		if len(topics) == 3 {
			break
		}
	}

	return topics, nil
}

// CallCount returns the number of times ExtractTopics was called.
func (m *MockTopicExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockTopicExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractTopicsFunc = nil
}
