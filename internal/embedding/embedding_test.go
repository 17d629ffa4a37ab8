package embedding_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/arunavtnt-prog/jarvis/internal/config"
	"github.com/arunavtnt-prog/jarvis/internal/embedding"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.EmbeddingConfig
		wantModelID string
		wantErr     bool
	}{
		{
			name:        "ollama",
			cfg:         config.EmbeddingConfig{Provider: config.ProviderOllama, Model: "nomic-embed-text"},
			wantModelID: "ollama/nomic-embed-text",
		},
		{
			name:        "openai",
			cfg:         config.EmbeddingConfig{Provider: config.ProviderOpenAI, Model: "text-embedding-3-small", APIKey: "sk-test"},
			wantModelID: "openai/text-embedding-3-small",
		},
		{
			name:    "unknown",
			cfg:     config.EmbeddingConfig{Provider: "word2vec"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emb, err := embedding.New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown provider")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := emb.ModelID(); got != tt.wantModelID {
				t.Errorf("ModelID = %q, want %q", got, tt.wantModelID)
			}
		})
	}
}

func TestOllamaEmbed(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.URL.Path != "/api/embed" {
			t.Errorf("path = %q, want /api/embed", r.URL.Path)
		}

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "nomic-embed-text" {
			t.Errorf("model = %q, want nomic-embed-text", req.Model)
		}
		if len(req.Input) != 2 {
			t.Errorf("input has %d entries, want 2", len(req.Input))
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"embeddings": [][]float32{{0.1, 0.2}, {0.3, 0.4}},
		})
	}))
	defer srv.Close()

	emb, err := embedding.NewOllama("nomic-embed-text", srv.URL)
	if err != nil {
		t.Fatalf("NewOllama: %v", err)
	}

	vecs, err := emb.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
	if vecs[1][0] != 0.3 {
		t.Errorf("vecs[1][0] = %f, want 0.3", vecs[1][0])
	}

	// Empty input never reaches the backend.
	if _, err := emb.Embed(context.Background(), nil); err != nil {
		t.Fatalf("Embed(nil): %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("backend calls = %d, want 1 (empty input short-circuits)", got)
	}
}

func TestOpenAIEmbed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q, want /embeddings", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want Bearer sk-test", got)
		}

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		// Out-of-order data exercises index-based reassembly.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0.3, 0.4}},
				{"index": 0, "embedding": []float32{0.1, 0.2}},
			},
		})
	}))
	defer srv.Close()

	emb := embedding.NewOpenAI("text-embedding-3-small", srv.URL, "sk-test")

	vecs, err := emb.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("got %d vectors, want 2", len(vecs))
	}
	if vecs[0][0] != 0.1 || vecs[1][0] != 0.3 {
		t.Errorf("vectors not reordered by index: %v", vecs)
	}
}

func TestOpenAIEmbedHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	emb := embedding.NewOpenAI("text-embedding-3-small", srv.URL, "bad-key")

	_, err := emb.Embed(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("expected error for HTTP 401")
	}
	if !strings.Contains(err.Error(), "Incorrect API key") {
		t.Errorf("error %q does not surface the API message", err)
	}
}

func TestOpenAIEmbedCountMismatch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 0, "embedding": []float32{0.1}},
			},
		})
	}))
	defer srv.Close()

	emb := embedding.NewOpenAI("text-embedding-3-small", srv.URL, "sk-test")

	_, err := emb.Embed(context.Background(), []string{"one", "two"})
	if err == nil {
		t.Fatal("expected error when response count mismatches input count")
	}
}
