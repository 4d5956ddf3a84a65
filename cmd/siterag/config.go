package main

import (
	"os"
	"strconv"

	"github.com/fwojciec/siterag"
	"github.com/joho/godotenv"
)

// Embedder backend names accepted by SITERAG_EMBEDDER.
const (
	embedderOpenAI = "openai"
	embedderOllama = "ollama"
)

// Config holds the runtime configuration, read from the environment
// (optionally seeded from a .env file in the working directory).
type Config struct {
	DBPath   string
	Embedder string

	OpenAIAPIKey string
	OpenAIModel  string

	OllamaHost  string
	OllamaModel string

	GeminiAPIKey string

	ChunkSize        int
	ChunkOverlap     int
	TopK             int
	MaxContextLength int
}

// LoadConfig reads configuration from the environment. A missing .env
// file is not an error. Invalid chunk parameters fail immediately so a
// misconfigured process never starts crawling.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:           envOr("SITERAG_DB_PATH", "siterag.db"),
		Embedder:         envOr("SITERAG_EMBEDDER", embedderOllama),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_EMBED_MODEL"),
		OllamaHost:       os.Getenv("OLLAMA_HOST"),
		OllamaModel:      os.Getenv("OLLAMA_EMBED_MODEL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		ChunkSize:        1200,
		ChunkOverlap:     200,
		TopK:             5,
		MaxContextLength: 8000,
	}

	var err error
	if cfg.ChunkSize, err = envIntOr("CHUNK_SIZE", cfg.ChunkSize); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = envIntOr("CHUNK_OVERLAP", cfg.ChunkOverlap); err != nil {
		return nil, err
	}
	if cfg.TopK, err = envIntOr("TOP_K_RESULTS", cfg.TopK); err != nil {
		return nil, err
	}
	if cfg.MaxContextLength, err = envIntOr("MAX_CONTEXT_LENGTH", cfg.MaxContextLength); err != nil {
		return nil, err
	}

	if cfg.Embedder != embedderOpenAI && cfg.Embedder != embedderOllama {
		return nil, siterag.Errorf(siterag.ECONFIG, "SITERAG_EMBEDDER must be %q or %q, got %q", embedderOpenAI, embedderOllama, cfg.Embedder)
	}
	if _, err := siterag.SplitText("", cfg.ChunkSize, cfg.ChunkOverlap); err != nil {
		return nil, err
	}
	if cfg.TopK <= 0 {
		return nil, siterag.Errorf(siterag.ECONFIG, "TOP_K_RESULTS must be positive, got %d", cfg.TopK)
	}
	if cfg.MaxContextLength <= 0 {
		return nil, siterag.Errorf(siterag.ECONFIG, "MAX_CONTEXT_LENGTH must be positive, got %d", cfg.MaxContextLength)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, siterag.Errorf(siterag.ECONFIG, "%s must be an integer, got %q", key, v)
	}
	return n, nil
}
