package gemini_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/siterag"
	"github.com/fwojciec/siterag/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_RejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil) // nil client ok for validation tests

	_, err := g.Generate(context.Background(), "some context", "")

	require.Error(t, err)
	assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
	assert.Contains(t, siterag.ErrorMessage(err), "query required")
}

func TestGenerator_Generate_RejectsEmptyContext(t *testing.T) {
	t.Parallel()

	g := gemini.NewGenerator(nil)

	_, err := g.Generate(context.Background(), "", "what is this?")

	require.Error(t, err)
	assert.Equal(t, siterag.EINVALID, siterag.ErrorCode(err))
	assert.Contains(t, siterag.ErrorMessage(err), "context required")
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("Pages are split into overlapping chunks.", "How are pages chunked?")

	assert.True(t, strings.HasPrefix(prompt, "Context:\n---\n"))
	assert.Contains(t, prompt, "Pages are split into overlapping chunks.")
	assert.Contains(t, prompt, "Question: How are pages chunked?")
	assert.Contains(t, prompt, "only the information from the provided context")
	// Context comes before the question.
	assert.Less(t, strings.Index(prompt, "overlapping chunks"), strings.Index(prompt, "Question:"))
}

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "only from the context")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, float64(*config.Temperature), 1e-6)
}
