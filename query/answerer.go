package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

// Answerer orchestrates query-time retrieval-augmented answering:
// embed the question, retrieve the top-K chunks, assemble the context, and
// synthesize an answer. It holds no per-question state, so independent
// questions may be answered concurrently.
type Answerer struct {
	embedder    ai.Embedder
	index       index.VectorIndex
	synthesizer ai.Synthesizer
	logger      *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates a new answerer.
func NewAnswerer(embedder ai.Embedder, idx index.VectorIndex, synthesizer ai.Synthesizer, opts ...Option) (*Answerer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}

	a := &Answerer{
		embedder:    embedder,
		index:       idx,
		synthesizer: synthesizer,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Answer answers the question from the topK most similar indexed chunks.
func (a *Answerer) Answer(ctx context.Context, question string, topK int) (*core.Answer, error) {
	return a.AnswerWithMonitor(ctx, question, topK, nil)
}

// AnswerWithMonitor answers the question with monitoring. The monitor
// receives callbacks at each stage of the process.
//
// Retrieving zero matches is not an error: synthesis still runs with an
// empty context and degrades to a "no information" style answer.
func (a *Answerer) AnswerWithMonitor(ctx context.Context, question string, topK int, monitor QueryMonitor) (*core.Answer, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: question cannot be empty", core.ErrInvalidArgument)
	}
	if err := core.ValidateTopK(topK); err != nil {
		return nil, err
	}

	monitor.Start(question)

	embedding, err := a.embedder.EmbedQuery(ctx, question)
	if err != nil {
		a.logger.Error("error generating embedding for question", "err", err)
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(embedding))

	matches, err := a.index.Query(ctx, embedding, topK, true)
	if err != nil {
		a.logger.Error("error querying index", "err", err)
		return nil, err
	}
	monitor.AfterRetrieval(matches)

	// Context is the matches' stored text joined in retrieval-rank order.
	parts := make([]string, len(matches))
	for i, match := range matches {
		parts[i] = match.Metadata.Text
	}
	contextText := strings.Join(parts, " ")
	monitor.AfterContextAssembly(contextText)

	answerText, err := a.synthesizer.Synthesize(ctx, contextText, question)
	if err != nil {
		a.logger.Error("error synthesizing answer", "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrSynthesisService, err)
	}

	answer := &core.Answer{
		Text:     answerText,
		Evidence: matches,
	}
	monitor.Finish(answer)

	return answer, nil
}
