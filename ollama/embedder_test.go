package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/ollama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer fakes an Ollama server: /api/tags answers OK, and
// /api/embeddings returns a vector derived from the prompt length.
func newServer(t *testing.T, tagsCalls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			if tagsCalls != nil {
				tagsCalls.Add(1)
			}
			w.WriteHeader(http.StatusOK)
		case "/api/embeddings":
			var req struct {
				Model  string `json:"model"`
				Prompt string `json:"prompt"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"embedding": []float64{float64(len(req.Prompt)), 1},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	srv := newServer(t, nil)
	defer srv.Close()

	e := ollama.NewEmbedder(ollama.WithHost(srv.URL))

	vector, err := e.Embed(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, []float32{5, 1}, vector)
}

func TestEmbedder_EmbedBatch(t *testing.T) {
	t.Parallel()

	t.Run("batch equals per-text embedding", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t, nil)
		defer srv.Close()

		e := ollama.NewEmbedder(ollama.WithHost(srv.URL))
		texts := []string{"a", "bb", "ccc"}

		batch, err := e.EmbedBatch(context.Background(), texts)
		require.NoError(t, err)
		require.Len(t, batch, len(texts))

		for i, text := range texts {
			single, err := e.Embed(context.Background(), text)
			require.NoError(t, err)
			assert.Equal(t, single, batch[i])
		}
	})

	t.Run("empty input makes no request", func(t *testing.T) {
		t.Parallel()

		e := ollama.NewEmbedder(ollama.WithHost("http://127.0.0.1:1")) // nothing listens here

		vectors, err := e.EmbedBatch(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vectors)
	})
}

func TestEmbedder_AvailabilityCheck(t *testing.T) {
	t.Parallel()

	t.Run("checks the server once across calls", func(t *testing.T) {
		t.Parallel()

		var tagsCalls atomic.Int32
		srv := newServer(t, &tagsCalls)
		defer srv.Close()

		e := ollama.NewEmbedder(ollama.WithHost(srv.URL))

		_, err := e.Embed(context.Background(), "one")
		require.NoError(t, err)
		_, err = e.Embed(context.Background(), "two")
		require.NoError(t, err)

		assert.Equal(t, int32(1), tagsCalls.Load())
	})

	t.Run("unreachable server is reported as unavailable", func(t *testing.T) {
		t.Parallel()

		e := ollama.NewEmbedder(ollama.WithHost("http://127.0.0.1:1"))

		_, err := e.Embed(context.Background(), "text")

		require.Error(t, err)
		assert.Equal(t, siterag.EUNAVAILABLE, siterag.ErrorCode(err))
	})
}

func TestEmbedder_Metadata(t *testing.T) {
	t.Parallel()

	e := ollama.NewEmbedder(ollama.WithModel("mxbai-embed-large"), ollama.WithDimensions(1024))

	assert.Equal(t, "mxbai-embed-large", e.ModelName())
	assert.Equal(t, 1024, e.Dimensions())
}
