package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/crawl"
	"github.com/fwojciec/siterag/gemini"
	"github.com/fwojciec/siterag/goquery"
	"github.com/fwojciec/siterag/htmltomarkdown"
	siteraghttp "github.com/fwojciec/siterag/http"
	"github.com/fwojciec/siterag/ollama"
	"github.com/fwojciec/siterag/openai"
	"github.com/fwojciec/siterag/rag"
	slogdec "github.com/fwojciec/siterag/slog"
	"github.com/fwojciec/siterag/sqlite"
	"github.com/fwojciec/siterag/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded from the environment before wiring.
	Config *Config

	// SQLite database backing the vector store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siterag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siterag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.Config == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		m.Config = cfg
	}
	deps.Config = m.Config

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.Config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: Set SITERAG_DB_PATH to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
	}
	defer m.Close()

	store := slogdec.NewLoggingStore(sqlite.NewVectorStore(m.DB), logger)
	embedder, err := m.newEmbedder()
	if err != nil {
		return err
	}

	service := &rag.Service{
		Embedder:         embedder,
		Store:            store,
		Logger:           logger,
		TopK:             m.Config.TopK,
		MaxContextLength: m.Config.MaxContextLength,
	}
	deps.Service = service

	if cmd == "index" {
		fetcher := slogdec.NewLoggingFetcher(siteraghttp.NewFetcher(), logger)
		defer fetcher.Close()

		service.Indexer = &crawl.Crawler{
			Fetcher:      fetcher,
			Extractor:    trafilatura.NewExtractor(),
			Links:        goquery.NewLinkExtractor(),
			Converter:    htmltomarkdown.NewConverter(),
			Embedder:     embedder,
			Store:        store,
			URLs:         siteraghttp.NewSitemapSource(nil),
			RateLimiter:  crawl.NewDomainLimiter(cli.Index.RPS),
			Logger:       logger,
			Concurrency:  cli.Index.Concurrency,
			ChunkSize:    m.Config.ChunkSize,
			ChunkOverlap: m.Config.ChunkOverlap,
		}
	}

	if cmd == "ask" {
		if m.Config.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return siterag.Errorf(siterag.ECONFIG, "GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  m.Config.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		service.Generator = gemini.NewGenerator(client)
	}

	return kongCtx.Run(deps)
}

// newEmbedder builds the embedding backend selected by SITERAG_EMBEDDER.
func (m *Main) newEmbedder() (siterag.Embedder, error) {
	switch m.Config.Embedder {
	case embedderOpenAI:
		if m.Config.OpenAIAPIKey == "" {
			return nil, siterag.Errorf(siterag.ECONFIG, "OPENAI_API_KEY not set")
		}
		var opts []openai.Option
		if m.Config.OpenAIModel != "" {
			opts = append(opts, openai.WithModel(m.Config.OpenAIModel))
		}
		return openai.NewEmbedder(m.Config.OpenAIAPIKey, opts...), nil
	case embedderOllama:
		var opts []ollama.Option
		if m.Config.OllamaHost != "" {
			opts = append(opts, ollama.WithHost(m.Config.OllamaHost))
		}
		if m.Config.OllamaModel != "" {
			opts = append(opts, ollama.WithModel(m.Config.OllamaModel))
		}
		return ollama.NewEmbedder(opts...), nil
	default:
		return nil, siterag.Errorf(siterag.ECONFIG, "unsupported embedder %q", m.Config.Embedder)
	}
}
