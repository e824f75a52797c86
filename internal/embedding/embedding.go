// Package embedding adapts langchaingo embedders to the chromem-go
// embedding function the vector store expects. The embedding model is
// configuration fixed at store-creation time.
package embedding

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/gato25/odoo-rag/internal/config"
)

// NewEmbeddingFunc builds the embedding function for the configured
// provider. Ollama serves local models; openai covers any
// OpenAI-compatible endpoint via base_url.
func NewEmbeddingFunc(cfg *config.EmbeddingConfig) (chromem.EmbeddingFunc, error) {
	embedder, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}, nil
}

func newEmbedder(cfg *config.EmbeddingConfig) (*embeddings.EmbedderImpl, error) {
	switch cfg.Provider {
	case "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("initializing ollama embedder: %w", err)
		}
		return embeddings.NewEmbedder(llm)
	case "openai":
		llm, err := openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("initializing openai embedder: %w", err)
		}
		return embeddings.NewEmbedder(llm)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
