package mock

import (
	"context"
	"sync"
)

// MockSynthesizer is a test double for ai.Synthesizer.
// It allows custom behavior injection via function fields. Function fields
// must be set before the synthesizer is shared across goroutines; calls and
// accessors are safe for concurrent use.
type MockSynthesizer struct {
	// SynthesizeFunc is called by Synthesize if set.
	// If nil, uses default canned behavior.
	SynthesizeFunc func(ctx context.Context, contextText, question string) (string, error)

	mu           sync.Mutex
	callCount    int
	lastContext  string
	lastQuestion string
}

// NewMockSynthesizer creates a mock synthesizer with default behavior.
// Returns the concrete type to allow test assertions.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{}
}

// Synthesize records its inputs and returns a canned answer.
// With an empty context the default mimics the production "I don't know"
// degradation instead of failing.
func (m *MockSynthesizer) Synthesize(ctx context.Context, contextText, question string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastContext = contextText
	m.lastQuestion = question
	m.mu.Unlock()

	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, contextText, question)
	}

	if contextText == "" {
		return "I don't know.", nil
	}
	return "mock answer", nil
}

// CallCount returns the number of times Synthesize was called.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastContext returns the context text of the most recent call.
func (m *MockSynthesizer) LastContext() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastContext
}

// LastQuestion returns the question of the most recent call.
func (m *MockSynthesizer) LastQuestion() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastQuestion
}

// Reset clears recorded state and custom functions.
func (m *MockSynthesizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastContext = ""
	m.lastQuestion = ""
	m.SynthesizeFunc = nil
}
