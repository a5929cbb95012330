package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL for the OpenAI-compatible API.
	// Example: "https://api.openai.com/v1" or "http://localhost:11434/v1"
	Host string

	// APIKey is the provider credential. Local OpenAI-compatible services
	// that don't require authentication can use any non-empty value.
	APIKey string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// ChatModel is the model identifier used for answer synthesis and
	// topic extraction. Example: "gpt-4o-mini"
	ChatModel string

	// MaxBatchSize caps the number of texts sent to the embedding API in a
	// single call. Larger inputs are split into multiple calls.
	// Default: 100
	MaxBatchSize int

	// MaxRetries is the maximum number of attempts for a failing provider
	// call. Default: 3
	MaxRetries int

	// RetryBaseDelay is the base delay for exponential backoff between
	// retries. Default: 1s
	RetryBaseDelay time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithMaxBatchSize sets the embedding batch cap.
func WithMaxBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.MaxBatchSize = size
	}
}

// WithRetry sets the retry policy for provider calls.
func WithRetry(maxRetries int, baseDelay time.Duration) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryBaseDelay = baseDelay
	}
}

// DefaultConfig returns a Config with sensible defaults for the public
// OpenAI API. The API key must still be supplied.
func DefaultConfig() *Config {
	return &Config{
		Host:           "https://api.openai.com/v1",
		EmbeddingModel: "text-embedding-3-small",
		ChatModel:      "gpt-4o-mini",
		MaxBatchSize:   100,
		MaxRetries:     3,
		RetryBaseDelay: time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in canonical form. It adds the
// /v1 suffix to the host if missing, which OpenAI-compatible APIs
// (Ollama, LocalAI, vLLM, etc.) require.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete. It
// normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.MaxBatchSize < 1 {
		return errors.New("ai config: MaxBatchSize must be at least 1")
	}
	if c.MaxRetries < 1 {
		return errors.New("ai config: MaxRetries must be at least 1")
	}
	return nil
}
