package mock

import "github.com/CihadCengiz/ai-enhanced-qa-system/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, extractor, and synthesizer instances.
type MockProvider struct {
	embedder    *MockEmbedder
	extractor   *MockTopicExtractor
	synthesizer *MockSynthesizer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use GetMockEmbedder()/GetMockExtractor()/GetMockSynthesizer()
// to access concrete types for assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:    NewMockEmbedder(),
		extractor:   NewMockTopicExtractor(),
		synthesizer: NewMockSynthesizer(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// TopicExtractor returns the mock topic extractor.
func (p *MockProvider) TopicExtractor() ai.TopicExtractor {
	return p.extractor
}

// Synthesizer returns the mock synthesizer.
func (p *MockProvider) Synthesizer() ai.Synthesizer {
	return p.synthesizer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockTopicExtractor {
	return p.extractor
}

// GetMockSynthesizer returns the underlying mock synthesizer for test assertions.
func (p *MockProvider) GetMockSynthesizer() *MockSynthesizer {
	return p.synthesizer
}
