package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "https://api.openai.com/v1", cfg.Host)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 100, cfg.MaxBatchSize)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryBaseDelay)
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://localhost:11434"),
		WithAPIKey("test-key"),
		WithEmbeddingModel("nomic-embed-text"),
		WithChatModel("llama3"),
		WithMaxBatchSize(25),
		WithRetry(5, 100*time.Millisecond),
	)

	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
	assert.Equal(t, "llama3", cfg.ChatModel)
	assert.Equal(t, 25, cfg.MaxBatchSize)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.RetryBaseDelay)
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{"adds v1 suffix", "http://localhost:11434", "http://localhost:11434/v1"},
		{"strips trailing slash", "http://localhost:11434/", "http://localhost:11434/v1"},
		{"keeps existing v1", "https://api.openai.com/v1", "https://api.openai.com/v1"},
		{"empty host untouched", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return NewConfig(WithAPIKey("key"))
	}

	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing fields fail", func(t *testing.T) {
		breakers := map[string]func(*Config){
			"host":            func(c *Config) { c.Host = "" },
			"api key":         func(c *Config) { c.APIKey = "" },
			"embedding model": func(c *Config) { c.EmbeddingModel = "" },
			"chat model":      func(c *Config) { c.ChatModel = "" },
			"batch size":      func(c *Config) { c.MaxBatchSize = 0 },
			"retries":         func(c *Config) { c.MaxRetries = 0 },
		}
		for name, broke := range breakers {
			t.Run(name, func(t *testing.T) {
				cfg := valid()
				broke(cfg)
				assert.Error(t, cfg.Validate())
			})
		}
	})
}
