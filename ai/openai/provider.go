package openai

import (
	"log/slog"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages embedder, topic extractor, and synthesizer instances.
type Provider struct {
	config      *ai.Config
	embedder    *Embedder
	extractor   *TopicExtractor
	synthesizer *Synthesizer
	logger      *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction and
// prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newTopicExtractor(config)
	if err != nil {
		return nil, err
	}

	synthesizer, err := newSynthesizer(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:      config,
		embedder:    embedder,
		extractor:   extractor,
		synthesizer: synthesizer,
		logger:      slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// TopicExtractor returns the topic extraction service.
func (p *Provider) TopicExtractor() ai.TopicExtractor {
	return p.extractor
}

// Synthesizer returns the answer synthesis service.
func (p *Provider) Synthesizer() ai.Synthesizer {
	return p.synthesizer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
