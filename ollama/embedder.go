// Package ollama implements siterag.Embedder against a local Ollama
// server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/siterag"
)

var _ siterag.Embedder = (*Embedder)(nil)

// Defaults for a local Ollama installation.
const (
	DefaultHost       = "http://localhost:11434"
	DefaultModel      = "nomic-embed-text"
	DefaultDimensions = 768 // nomic-embed-text
	DefaultTimeout    = 30 * time.Second
)

// Embedder generates embeddings via Ollama's /api/embeddings endpoint.
// Ollama has no batch API, so EmbedBatch issues one request per text.
// Server reachability is verified once, lazily, on first use.
type Embedder struct {
	client     *http.Client
	host       string
	model      string
	dimensions int

	checkOnce sync.Once
	checkErr  error
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithHost sets the Ollama server address. Defaults to DefaultHost.
func WithHost(host string) Option {
	return func(e *Embedder) {
		e.host = host
	}
}

// WithModel sets the embedding model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithDimensions sets the expected vector dimension for the model.
func WithDimensions(dims int) Option {
	return func(e *Embedder) {
		e.dimensions = dims
	}
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Embedder) {
		e.client.Timeout = d
	}
}

// NewEmbedder creates an Ollama-backed Embedder.
func NewEmbedder(opts ...Option) *Embedder {
	e := &Embedder{
		client:     &http.Client{Timeout: DefaultTimeout},
		host:       DefaultHost,
		model:      DefaultModel,
		dimensions: DefaultDimensions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed maps a single text to its embedding vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.available(ctx); err != nil {
		return nil, err
	}
	return e.embed(ctx, text)
}

// EmbedBatch maps texts to vectors, preserving order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if err := e.available(ctx); err != nil {
		return nil, err
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := e.embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = v
	}
	return vectors, nil
}

// Dimensions returns the configured vector length.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// ModelName identifies the embedding model.
func (e *Embedder) ModelName() string {
	return e.model
}

// available verifies the server is reachable, once per process.
// /api/tags is a cheap connectivity check that runs no inference.
func (e *Embedder) available(ctx context.Context) error {
	e.checkOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.host+"/api/tags", nil)
		if err != nil {
			e.checkErr = siterag.Errorf(siterag.EUNAVAILABLE, "ollama: invalid host %q: %v", e.host, err)
			return
		}
		resp, err := e.client.Do(req)
		if err != nil {
			e.checkErr = siterag.Errorf(siterag.EUNAVAILABLE, "ollama: server unreachable at %s: %v", e.host, err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			e.checkErr = siterag.Errorf(siterag.EUNAVAILABLE, "ollama: server returned HTTP %d", resp.StatusCode)
		}
	})
	return e.checkErr
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(embedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, siterag.Errorf(siterag.EINTERNAL, "ollama: marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.host+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, siterag.Errorf(siterag.EINTERNAL, "ollama: create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "ollama: request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "ollama: API error %d: %s", resp.StatusCode, respBody)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "ollama: decode response: %v", err)
	}

	vector := make([]float32, len(parsed.Embedding))
	for i, v := range parsed.Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// Ollama returns float64 values; vectors are stored as float32.
type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}
