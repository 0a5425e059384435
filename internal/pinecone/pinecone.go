// Package pinecone provides a client for the Pinecone vector database REST
// API, used to store and search exemplar essay embeddings.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Error represents an error from the Pinecone API.
type Error struct {
	Op      string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pinecone %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("pinecone %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config holds the connection settings for a Pinecone index.
type Config struct {
	APIKey    string
	IndexHost string // e.g. https://mba-essays-xxxx.svc.aped-4627-b74a.pinecone.io
	Timeout   time.Duration
}

// Client talks to a single Pinecone index.
type Client struct {
	apiKey    string
	indexHost string
	client    *http.Client
}

// New creates a Pinecone client for the configured index.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}
	if cfg.IndexHost == "" {
		return nil, fmt.Errorf("pinecone index host is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		apiKey:    cfg.APIKey,
		indexHost: cfg.IndexHost,
		client:    &http.Client{Timeout: timeout},
	}, nil
}

// Vector is an embedding with its exemplar metadata, as stored in the index.
type Vector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata"`
}

// SearchResult is one similarity match with its exemplar metadata unpacked.
type SearchResult struct {
	Score    float64
	Essay    string
	Prompt   string
	School   string
	Feedback string
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float64           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

// Query finds the topK nearest stored exemplars to the given embedding,
// restricted to the given school.
func (c *Client) Query(ctx context.Context, vector []float32, school string, topK int) ([]SearchResult, error) {
	req := queryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
	}
	if school != "" {
		req.Filter = map[string]any{"school": map[string]any{"$eq": school}}
	}

	var resp queryResponse
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		results = append(results, SearchResult{
			Score:    match.Score,
			Essay:    match.Metadata["essay"],
			Prompt:   match.Metadata["prompt"],
			School:   match.Metadata["school"],
			Feedback: match.Metadata["feedback"],
		})
	}
	return results, nil
}

type upsertRequest struct {
	Vectors []Vector `json:"vectors"`
}

// Upsert stores the given vectors in the index, overwriting existing IDs.
func (c *Client) Upsert(ctx context.Context, vectors []Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	return c.post(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, &struct{}{})
}

// post issues a JSON request against the index host and decodes the response.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: path, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Op: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: path, Status: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{Op: path, Status: resp.StatusCode, Message: string(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: path, Status: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return nil
}
