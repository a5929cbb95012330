package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Synthesizer implements ai.Synthesizer using OpenAI-compatible chat APIs.
type Synthesizer struct {
	client llms.Model
	logger *slog.Logger
}

// newSynthesizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSynthesizer(config *ai.Config) (*Synthesizer, error) {
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

	return &Synthesizer{
		client: client,
		logger: slog.Default().With("component", "openai-synthesizer"),
	}, nil
}

// NewSynthesizer creates a new synthesizer using the provided
// configuration.
//
// Returns ai.Synthesizer interface to enforce abstraction.
func NewSynthesizer(config *ai.Config) (ai.Synthesizer, error) {
	return newSynthesizer(config)
}

// Synthesize answers question from contextText with a stuff-style QA
// prompt. An empty context is allowed; the prompt then steers the model
// toward an "I don't know" answer instead of failing.
func (s *Synthesizer) Synthesize(ctx context.Context, contextText, question string) (string, error) {
	s.logger.Debug("synthesizing answer", "contextLength", len(contextText), "questionLength", len(question))

	prompt := buildSynthesisPrompt(contextText, question)
	answer, err := llms.GenerateFromSinglePrompt(ctx, s.client, prompt, llms.WithTemperature(0.0))
	if err != nil {
		s.logger.Error("failed to synthesize answer", "err", err)
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
