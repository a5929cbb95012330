// Package pinecone provides a VectorIndex over a remote Pinecone-style
// index. It is a minimal REST client: upsert, top-K query, and metadata
// update, all against the index's data-plane host.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/CihadCengiz/ai-enhanced-qa-system/core"
	"github.com/CihadCengiz/ai-enhanced-qa-system/index"
)

// Config holds connection details for a Pinecone-style index.
type Config struct {
	// Host is the index's data-plane base URL, e.g.
	// "https://my-index-abc123.svc.us-east-1-aws.pinecone.io".
	Host string

	// APIKey authenticates requests.
	APIKey string

	// Dimension is the fixed embedding dimensionality of the index.
	Dimension int

	// Timeout bounds each HTTP request. Default 30s.
	Timeout time.Duration
}

// Client is a remote vector index client.
type Client struct {
	host      string
	apiKey    string
	dimension int
	client    *http.Client
	logger    *slog.Logger
}

var _ index.VectorIndex = (*Client)(nil)

// NewClient creates a client for the configured index.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: pinecone host required", core.ErrConfiguration)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		host:      strings.TrimSuffix(cfg.Host, "/"),
		apiKey:    cfg.APIKey,
		dimension: cfg.Dimension,
		client:    &http.Client{Timeout: timeout},
		logger:    slog.Default().With("component", "pinecone-index"),
	}, nil
}

// Close is a no-op; the client holds no persistent connections of its own.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

type wireVector struct {
	ID       string       `json:"id"`
	Values   []float32    `json:"values"`
	Metadata wireMetadata `json:"metadata,omitempty"`
}

type wireMetadata struct {
	Text   string   `json:"text,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// Upsert writes all records in a single call. The remote index applies the
// request as a unit, so a failed upsert commits nothing.
func (c *Client) Upsert(ctx context.Context, records []core.VectorRecord) error {
	for _, record := range records {
		if err := core.ValidateDimension(record.Embedding, c.dimension); err != nil {
			return err
		}
	}

	vectors := make([]wireVector, len(records))
	for i, record := range records {
		vectors[i] = wireVector{
			ID:     record.ID,
			Values: record.Embedding,
			Metadata: wireMetadata{
				Text:   record.Metadata.Text,
				Topics: record.Metadata.Topics,
			},
		}
	}

	body := map[string]any{"vectors": vectors}
	return c.post(ctx, "/vectors/upsert", body, nil, false)
}

// Query returns up to topK matches, ordered by score descending with ties
// broken by ascending ID. The ordering is re-established client-side so the
// contract does not depend on the remote service's tie behavior.
func (c *Client) Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]core.RetrievalMatch, error) {
	if err := core.ValidateTopK(topK); err != nil {
		return nil, err
	}
	if err := core.ValidateDimension(vector, c.dimension); err != nil {
		return nil, err
	}

	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": includeMetadata,
	}
	var resp struct {
		Matches []struct {
			ID       string       `json:"id"`
			Score    float32      `json:"score"`
			Metadata wireMetadata `json:"metadata"`
		} `json:"matches"`
	}
	if err := c.post(ctx, "/query", body, &resp, false); err != nil {
		return nil, err
	}

	matches := make([]core.RetrievalMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		match := core.RetrievalMatch{ChunkID: m.ID, Score: m.Score}
		if includeMetadata {
			match.Metadata = core.Metadata{Text: m.Metadata.Text, Topics: m.Metadata.Topics}
		}
		matches = append(matches, match)
	}

	slices.SortFunc(matches, func(a, b core.RetrievalMatch) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(a.ChunkID, b.ChunkID)
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// MergeMetadata updates the record's metadata in place; the embedding is
// untouched. The remote update merges the supplied fields per key, which
// matches Metadata.Merge semantics for our two fields.
func (c *Client) MergeMetadata(ctx context.Context, id string, patch core.Metadata) error {
	setMetadata := map[string]any{}
	if patch.Text != "" {
		setMetadata["text"] = patch.Text
	}
	if patch.Topics != nil {
		setMetadata["topics"] = patch.Topics
	}
	if len(setMetadata) == 0 {
		return nil
	}

	body := map[string]any{
		"id":          id,
		"setMetadata": setMetadata,
	}
	return c.post(ctx, "/vectors/update", body, nil, true)
}

// post sends a JSON request. missingIsNotFound maps an HTTP 404 to
// ErrNotFound; only the metadata update uses it, since a 404 on the other
// endpoints signals a misconfigured host rather than a missing record.
func (c *Client) post(ctx context.Context, path string, body any, out any, missingIsNotFound bool) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: %w", index.ErrService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", index.ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: POST %s: %w", index.ErrService, path, err)
	}
	defer resp.Body.Close()

	if missingIsNotFound && resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: POST %s", index.ErrNotFound, path)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: POST %s failed: %s", index.ErrService, path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: POST %s: decoding response: %w", index.ErrService, path, err)
		}
	}
	return nil
}
