// Package embedding provides swappable text embedding backends behind a
// single batch interface. Vectors from different backends (or different
// models of the same backend) are not interchangeable; consumers record
// ModelID alongside stored vectors to detect mixing.
package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/arunavtnt-prog/jarvis/internal/config"
)

// embedTimeout bounds a single embedding HTTP call. Local models can be
// slow on first load, so this is generous.
const embedTimeout = 120 * time.Second

// Embedder produces one fixed-dimension vector per input text.
type Embedder interface {
	// Embed returns one vector per input, in input order. Empty input
	// returns (nil, nil) without any backend call.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelID identifies the backend and model ("ollama/nomic-embed-text").
	// Two Embedders with equal ModelIDs produce vectors in the same space.
	ModelID() string
}

// New constructs the Embedder selected by cfg.
func New(cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		return NewOllama(cfg.Model, cfg.BaseURL)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.Model, cfg.BaseURL, cfg.ResolveAPIKey()), nil
	default:
		return nil, fmt.Errorf("embedding: unknown provider %q", cfg.Provider)
	}
}
