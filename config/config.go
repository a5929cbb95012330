// Package config loads the application configuration from YAML, applying
// defaults for anything not set. Secrets (API keys) are referenced by
// environment variable name, never stored in the file itself.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AIConfig configures the OpenAI-compatible embedding and chat services.
type AIConfig struct {
	Host           string `yaml:"host"`
	APIKeyEnv      string `yaml:"api_key_env"`
	EmbeddingModel string `yaml:"embedding_model"`
	ChatModel      string `yaml:"chat_model"`
	MaxBatchSize   int    `yaml:"max_batch_size"`
	MaxRetries     int    `yaml:"max_retries"`
	RetryDelaySecs int    `yaml:"retry_delay_secs"`
}

// PineconeConfig contains connection details for a remote Pinecone-style
// index.
type PineconeConfig struct {
	Host        string `yaml:"host"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// BadgerConfig configures the local persistent index.
type BadgerConfig struct {
	Path string `yaml:"path"`
}

// IndexConfig selects and configures the vector index implementation.
type IndexConfig struct {
	Type      string          `yaml:"type"` // memory | badger | pinecone
	Dimension int             `yaml:"dimension"`
	Badger    *BadgerConfig   `yaml:"badger,omitempty"`
	Pinecone  *PineconeConfig `yaml:"pinecone,omitempty"`
}

// ChunkingConfig configures how documents are split into chunks.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// EnrichmentConfig configures the topic enrichment worker pool.
type EnrichmentConfig struct {
	PoolSize        int `yaml:"pool_size"`
	TaskTimeoutSecs int `yaml:"task_timeout_secs"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	AI         AIConfig         `yaml:"ai"`
	Index      IndexConfig      `yaml:"index"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// Load reads a config from path. If the file does not exist, returns
// defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present: public
// OpenAI models and a purely in-memory index.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.AI.Host == "" {
		cfg.AI.Host = "https://api.openai.com/v1"
	}
	if cfg.AI.APIKeyEnv == "" {
		cfg.AI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.AI.EmbeddingModel == "" {
		cfg.AI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.AI.ChatModel == "" {
		cfg.AI.ChatModel = "gpt-4o-mini"
	}
	if cfg.AI.MaxBatchSize == 0 {
		cfg.AI.MaxBatchSize = 100
	}
	if cfg.AI.MaxRetries == 0 {
		cfg.AI.MaxRetries = 3
	}
	if cfg.AI.RetryDelaySecs == 0 {
		cfg.AI.RetryDelaySecs = 1
	}

	if cfg.Index.Type == "" {
		cfg.Index.Type = "memory"
	}
	if cfg.Index.Type == "badger" && cfg.Index.Badger == nil {
		cfg.Index.Badger = &BadgerConfig{}
	}
	if cfg.Index.Badger != nil && cfg.Index.Badger.Path == "" {
		cfg.Index.Badger.Path = "qa-index"
	}
	if cfg.Index.Type == "pinecone" && cfg.Index.Pinecone == nil {
		cfg.Index.Pinecone = &PineconeConfig{APIKeyEnv: "PINECONE_API_KEY", TimeoutSecs: 30}
	}
	if cfg.Index.Pinecone != nil {
		if cfg.Index.Pinecone.APIKeyEnv == "" {
			cfg.Index.Pinecone.APIKeyEnv = "PINECONE_API_KEY"
		}
		if cfg.Index.Pinecone.TimeoutSecs == 0 {
			cfg.Index.Pinecone.TimeoutSecs = 30
		}
	}

	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = 512
		if cfg.Chunking.Overlap == 0 {
			cfg.Chunking.Overlap = 200
		}
	}

	if cfg.Enrichment.PoolSize == 0 {
		cfg.Enrichment.PoolSize = 4
	}
	if cfg.Enrichment.TaskTimeoutSecs == 0 {
		cfg.Enrichment.TaskTimeoutSecs = 30
	}
}

// Validate checks cross-field constraints that defaults cannot repair.
func (cfg *AppConfig) Validate() error {
	switch cfg.Index.Type {
	case "memory", "badger", "pinecone":
	default:
		return fmt.Errorf("config: unknown index type %q", cfg.Index.Type)
	}
	if cfg.Index.Type == "pinecone" && (cfg.Index.Pinecone == nil || cfg.Index.Pinecone.Host == "") {
		return errors.New("config: pinecone index requires a host")
	}
	if cfg.Chunking.Size <= 0 {
		return errors.New("config: chunking size must be positive")
	}
	if cfg.Chunking.Overlap < 0 || cfg.Chunking.Overlap >= cfg.Chunking.Size {
		return errors.New("config: chunking overlap must be in [0, size)")
	}
	return nil
}
