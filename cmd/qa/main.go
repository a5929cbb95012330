package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/CihadCengiz/ai-enhanced-qa-system/ai"
	"github.com/CihadCengiz/ai-enhanced-qa-system/ai/openai"
	"github.com/CihadCengiz/ai-enhanced-qa-system/config"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
	badgerindex "github.com/CihadCengiz/ai-enhanced-qa-system/index/badger"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index/memory"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index/pinecone"
	"github.com/CihadCengiz/ai-enhanced-qa-system/ingestion"
	"github.com/CihadCengiz/ai-enhanced-qa-system/query"
)

func main() {
	// Best-effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "qa",
		Usage: "Retrieval-augmented question answering over your documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "config.yaml",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a plain-text document into the index",
				ArgsUsage: "FILE",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "wait",
						Usage: "Wait for topic enrichment to finish and report counts",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against the indexed documents",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of chunks to retrieve as context",
						Value:   3,
					},
					&cli.BoolFlag{
						Name:  "evidence",
						Usage: "Print the retrieved chunks and scores",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", c.String("log-level"))
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func loadConfig(c *cli.Context) (*config.AppConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func buildAIConfig(cfg *config.AppConfig) (*ai.Config, error) {
	apiKey := os.Getenv(cfg.AI.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", cfg.AI.APIKeyEnv)
	}
	aiConfig := ai.NewConfig(
		ai.WithHost(cfg.AI.Host),
		ai.WithAPIKey(apiKey),
		ai.WithEmbeddingModel(cfg.AI.EmbeddingModel),
		ai.WithChatModel(cfg.AI.ChatModel),
		ai.WithMaxBatchSize(cfg.AI.MaxBatchSize),
		ai.WithRetry(cfg.AI.MaxRetries, time.Duration(cfg.AI.RetryDelaySecs)*time.Second),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, err
	}
	return aiConfig, nil
}

func buildIndex(cfg *config.AppConfig) (index.VectorIndex, error) {
	switch cfg.Index.Type {
	case "memory":
		return memory.NewStore(memory.Config{Dimension: cfg.Index.Dimension}), nil
	case "badger":
		return badgerindex.OpenStore(badgerindex.Config{
			Path:      cfg.Index.Badger.Path,
			Dimension: cfg.Index.Dimension,
		})
	case "pinecone":
		return pinecone.NewClient(pinecone.Config{
			Host:      cfg.Index.Pinecone.Host,
			APIKey:    os.Getenv(cfg.Index.Pinecone.APIKeyEnv),
			Dimension: cfg.Index.Dimension,
			Timeout:   time.Duration(cfg.Index.Pinecone.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown index type %q", cfg.Index.Type)
	}
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: qa ingest FILE")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	aiConfig, err := buildAIConfig(cfg)
	if err != nil {
		return err
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	embedder, err := ai.NewBatchingEmbedder(provider.Embedder(), aiConfig)
	if err != nil {
		return err
	}

	idx, err := buildIndex(cfg)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	enricher, err := ingestion.NewEnricher(idx, provider.TopicExtractor(),
		ingestion.WithPoolSize(cfg.Enrichment.PoolSize),
		ingestion.WithTaskTimeout(time.Duration(cfg.Enrichment.TaskTimeoutSecs)*time.Second),
	)
	if err != nil {
		return err
	}
	defer enricher.Release()

	pipeline, err := ingestion.NewPipeline(embedder, idx, enricher,
		ingestion.WithChunking(cfg.Chunking.Size, cfg.Chunking.Overlap),
	)
	if err != nil {
		return err
	}

	result, err := pipeline.Ingest(context.Background(), string(data))
	if err != nil {
		// Internal cause goes to the log; the user gets a generic failure.
		slog.Error("ingestion failed", "err", err)
		return fmt.Errorf("could not process document")
	}

	fmt.Printf("Ingested %d chunks (document %s)\n", result.ChunkCount, result.DocumentID)

	if c.Bool("wait") {
		result.Enrichment.Wait()
		fmt.Printf("Enrichment finished: %d merged, %d failed\n",
			result.Enrichment.Succeeded(), result.Enrichment.Failed())
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: qa ask QUESTION")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	aiConfig, err := buildAIConfig(cfg)
	if err != nil {
		return err
	}

	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create AI provider: %w", err)
	}
	defer provider.Close()

	embedder, err := ai.NewBatchingEmbedder(provider.Embedder(), aiConfig)
	if err != nil {
		return err
	}

	idx, err := buildIndex(cfg)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer idx.Close()

	answerer, err := query.NewAnswerer(embedder, idx, provider.Synthesizer())
	if err != nil {
		return err
	}

	answer, err := answerer.Answer(context.Background(), c.Args().First(), c.Int("top-k"))
	if err != nil {
		// Query failures carry the underlying message; it aids debugging.
		return fmt.Errorf("question failed: %w", err)
	}

	fmt.Println(answer.Text)

	if c.Bool("evidence") {
		fmt.Println()
		for i, match := range answer.Evidence {
			fmt.Printf("[%d] score=%.4f %s\n", i+1, match.Score, match.Metadata.Text)
		}
	}
	return nil
}
