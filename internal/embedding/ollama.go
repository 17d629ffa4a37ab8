package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	ollama "github.com/ollama/ollama/api"
)

const defaultOllamaURL = "http://localhost:11434"

// Compile-time interface guard.
var _ Embedder = (*Ollama)(nil)

// Ollama embeds text with a locally served model via the Ollama API.
type Ollama struct {
	client *ollama.Client
	model  string
}

// NewOllama creates an Ollama-backed embedder. An empty baseURL targets
// the default local server.
func NewOllama(model, baseURL string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid base URL %q: %w", baseURL, err)
	}

	client := ollama.NewClient(parsed, &http.Client{Timeout: embedTimeout})

	return &Ollama{client: client, model: model}, nil
}

// Embed sends the whole batch in a single API call.
func (o *Ollama) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := o.client.Embed(ctx, &ollama.EmbedRequest{
		Model: o.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: embed: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("ollama: got %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	return resp.Embeddings, nil
}

// ModelID implements Embedder.
func (o *Ollama) ModelID() string {
	return "ollama/" + o.model
}
