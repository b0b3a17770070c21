package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Embedder maps text to a fixed-dimension dense vector. The core treats
// the model as a black box; tests substitute deterministic fakes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
	dimension  int
}

// NewGeminiEmbedder creates an Embedder backed by the Gemini embedding API.
func NewGeminiEmbedder(apiKey string) (Embedder, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEmbedder{
		client:     client,
		embedModel: "text-embedding-004",
		dimension:  768,
	}, nil
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// Dimension implements Embedder.
func (g *geminiEmbedder) Dimension() int {
	return g.dimension
}
