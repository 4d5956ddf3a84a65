// Package openai implements siterag.Embedder using the OpenAI
// embeddings API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/siterag"
)

var _ siterag.Embedder = (*Embedder)(nil)

// Defaults for the OpenAI embeddings API.
const (
	DefaultModel      = "text-embedding-3-small"
	DefaultDimensions = 1536
	DefaultTimeout    = 30 * time.Second

	defaultBaseURL = "https://api.openai.com/v1"
	// maxBatchSize keeps a single request within API input limits.
	maxBatchSize = 512
)

// Embedder generates embeddings via the OpenAI API. Texts are batched
// in a single request where possible.
type Embedder struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithModel sets the embedding model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(e *Embedder) {
		e.model = model
	}
}

// WithDimensions sets the requested vector dimension.
// Defaults to DefaultDimensions.
func WithDimensions(dims int) Option {
	return func(e *Embedder) {
		e.dimensions = dims
	}
}

// WithBaseURL overrides the API endpoint, e.g. for a test server or an
// API-compatible proxy.
func WithBaseURL(url string) Option {
	return func(e *Embedder) {
		e.baseURL = url
	}
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Embedder) {
		e.client.Timeout = d
	}
}

// NewEmbedder creates an OpenAI-backed Embedder.
func NewEmbedder(apiKey string, opts ...Option) *Embedder {
	e := &Embedder{
		client:     &http.Client{Timeout: DefaultTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
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
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch maps texts to vectors, preserving order. The API's index
// field is used to place each vector so out-of-order responses are
// still correct.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if e.apiKey == "" {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: API key not configured")
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))
		batch, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{
		Model:      e.model,
		Input:      texts,
		Dimensions: e.dimensions,
	})
	if err != nil {
		return nil, siterag.Errorf(siterag.EINTERNAL, "openai: marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, siterag.Errorf(siterag.EINTERNAL, "openai: create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: API error %d: %s", resp.StatusCode, respBody)
	}

	var parsed embedResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: unmarshal response: %v", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: got %d embeddings for %d inputs", len(parsed.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, siterag.Errorf(siterag.EUNAVAILABLE, "openai: embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
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

type embedRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embedResponse struct {
	Data []embedData `json:"data"`
}

type embedData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}
