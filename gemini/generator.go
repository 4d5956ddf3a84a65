// Package gemini implements siterag.Generator using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/siterag"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Generator implements siterag.Generator at compile time.
var _ siterag.Generator = (*Generator)(nil)

// Generator answers questions using Google Gemini, constrained to the
// retrieved context it is given.
type Generator struct {
	client *genai.Client
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces an answer grounded in contextText. Provider
// failures are EPROVIDER-coded so callers can return retrieval results
// without an answer.
func (g *Generator) Generate(ctx context.Context, contextText, query string) (string, error) {
	if query == "" {
		return "", siterag.Errorf(siterag.EINVALID, "query required")
	}
	if contextText == "" {
		return "", siterag.Errorf(siterag.EINVALID, "context required")
	}

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(contextText, query)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", siterag.Errorf(siterag.EPROVIDER, "gemini: %v", err)
	}
	if result == nil {
		return "", siterag.Errorf(siterag.EPROVIDER, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The system instruction restricts answers to the provided context.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant that answers questions based on the provided context. Answer only from the context. If the context does not contain the answer, say so plainly. Never invent information that is not in the context.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt embedding the retrieved
// context and the question.
func BuildUserPrompt(contextText, query string) string {
	var sb strings.Builder
	sb.WriteString("Context:\n---\n")
	sb.WriteString(contextText)
	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\n", query)
	sb.WriteString("Please answer the question using only the information from the provided context.")
	return sb.String()
}
