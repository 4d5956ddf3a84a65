package main

import (
	"context"
	"io"

	"github.com/fwojciec/siterag/rag"
)

// Dependencies holds services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *Config
	Service *rag.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Index  IndexCmd  `cmd:"" help:"Crawl a website and index its pages"`
	Search SearchCmd `cmd:"" help:"Find indexed chunks similar to a query"`
	Ask    AskCmd    `cmd:"" help:"Answer a question from indexed content"`
	Stats  StatsCmd  `cmd:"" help:"Show index statistics"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	URL         string  `arg:"" help:"Seed URL to crawl from"`
	MaxPages    int     `short:"n" default:"25" help:"Maximum number of pages to process"`
	Concurrency int     `short:"c" default:"5" help:"Concurrent fetch limit"`
	RPS         float64 `default:"2" help:"Requests per second per domain"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query   string `arg:"" help:"Search query"`
	TopK    int    `short:"k" help:"Number of results (defaults to TOP_K_RESULTS)"`
	Source  string `help:"Restrict results to one source URL"`
	Keyword string `help:"Require results to contain a substring"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to answer from indexed content"`
	TopK     int    `short:"k" help:"Number of chunks to retrieve (defaults to TOP_K_RESULTS)"`
	Keyword  string `help:"Require retrieved chunks to contain a substring"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Sources bool `help:"List indexed source URLs"`
}
