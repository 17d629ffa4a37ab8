// Package vector maintains a persistent nearest-neighbor index over
// embedded fact content. The index is a derived projection of the fact
// store: destroying and rebuilding it loses nothing.
package vector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/arunavtnt-prog/jarvis/internal/embedding"
	"github.com/arunavtnt-prog/jarvis/internal/memory"
)

const (
	collectionName = "jarvis_memory"

	// embedderFile records which embedding model built the index.
	// Vectors from different models share no geometry, so mixing them
	// silently ruins relevance; this file makes the mismatch loud.
	embedderFile = "embedder"
)

// Sentinel errors for index operations.
var (
	// ErrEmbeddingMismatch indicates the on-disk index was built with a
	// different embedding model than the one configured now.
	ErrEmbeddingMismatch = errors.New("vector: index built with a different embedding model")

	// ErrNotEmpty indicates Build was called on a non-empty index.
	// Rebuilding requires an explicit Reset first.
	ErrNotEmpty = errors.New("vector: index not empty")
)

// Result is one search hit, annotated with its fact metadata and a
// distance score (lower is more similar).
type Result struct {
	FactID    int64
	Content   string
	Type      string
	SourceRef string
	Timestamp string
	Distance  float32
}

// Index is a chromem-backed persistent vector index.
type Index struct {
	db       *chromem.DB
	col      *chromem.Collection
	embedder embedding.Embedder
	logger   *slog.Logger
	dir      string
}

// Open opens (creating if necessary) the index at dir using emb for all
// embedding. Opening an index built with a different embedding model
// fails with ErrEmbeddingMismatch.
func Open(dir string, emb embedding.Embedder, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("vector: open %s: %w", dir, err)
	}

	if err := checkFingerprint(dir, emb.ModelID()); err != nil {
		return nil, err
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, embedOne(emb))
	if err != nil {
		return nil, fmt.Errorf("vector: open collection %s: %w", collectionName, err)
	}

	return &Index{db: db, col: col, embedder: emb, logger: logger, dir: dir}, nil
}

// checkFingerprint verifies the stored embedder fingerprint, writing it
// on first open.
func checkFingerprint(dir, modelID string) error {
	path := filepath.Join(dir, embedderFile)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		stored := strings.TrimSpace(string(raw))
		if stored != modelID {
			return fmt.Errorf("%w: index has %q, configured %q (rebuild the index to switch models)",
				ErrEmbeddingMismatch, stored, modelID)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return writeFingerprint(dir, modelID)
	default:
		return fmt.Errorf("vector: read embedder fingerprint: %w", err)
	}
}

func writeFingerprint(dir, modelID string) error {
	path := filepath.Join(dir, embedderFile)
	if err := os.WriteFile(path, []byte(modelID+"\n"), 0o600); err != nil {
		return fmt.Errorf("vector: write embedder fingerprint: %w", err)
	}
	return nil
}

// embedOne adapts the batch Embedder to chromem's single-text function.
// The collection never invokes it on our code paths (documents arrive
// with vectors attached and queries use QueryEmbedding), but wiring it
// keeps chromem's fallback inside the same embedding space.
func embedOne(emb embedding.Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vecs, err := emb.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vecs) != 1 {
			return nil, fmt.Errorf("vector: got %d embeddings for one input", len(vecs))
		}
		return vecs[0], nil
	}
}

// Count returns the number of indexed entries.
func (ix *Index) Count() int {
	return ix.col.Count()
}

// Build embeds facts in sequential batches and adds them to the index.
// It refuses a non-empty index with ErrNotEmpty: wiping is an explicit,
// separate Reset so old and new embeddings are never silently merged.
// Building from zero facts is a logged no-op with no embedding calls.
func (ix *Index) Build(ctx context.Context, facts []memory.Fact, batchSize int) (int, error) {
	if len(facts) == 0 {
		ix.logger.Info("no facts to index")
		return 0, nil
	}
	if ix.col.Count() > 0 {
		return 0, fmt.Errorf("%w: %d entries present, reset before rebuilding", ErrNotEmpty, ix.col.Count())
	}
	if batchSize <= 0 {
		batchSize = 100
	}

	indexed := 0
	for start := 0; start < len(facts); start += batchSize {
		end := min(start+batchSize, len(facts))
		batch := facts[start:end]

		texts := make([]string, len(batch))
		for i, fact := range batch {
			texts[i] = fact.Content
		}

		vecs, err := ix.embedder.Embed(ctx, texts)
		if err != nil {
			return indexed, fmt.Errorf("vector: embed batch at %d: %w", start, err)
		}
		if len(vecs) != len(batch) {
			return indexed, fmt.Errorf("vector: got %d embeddings for %d facts", len(vecs), len(batch))
		}

		docs := make([]chromem.Document, len(batch))
		for i, fact := range batch {
			docs[i] = chromem.Document{
				ID:        strconv.FormatInt(fact.ID, 10),
				Content:   fact.Content,
				Embedding: vecs[i],
				Metadata: map[string]string{
					"type":             fact.Type,
					"source_reference": fact.SourceRef,
					"timestamp":        fact.Timestamp,
				},
			}
		}

		if err := ix.col.AddDocuments(ctx, docs, 1); err != nil {
			return indexed, fmt.Errorf("vector: add batch at %d: %w", start, err)
		}

		indexed += len(batch)
		ix.logger.Info("indexed batch", "indexed", indexed, "total", len(facts))
	}

	return indexed, nil
}

// Reset wipes the index. Callers own the confirmation policy; Reset
// itself is unconditional.
func (ix *Index) Reset() error {
	if err := ix.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("vector: delete collection: %w", err)
	}

	col, err := ix.db.GetOrCreateCollection(collectionName, nil, embedOne(ix.embedder))
	if err != nil {
		return fmt.Errorf("vector: recreate collection: %w", err)
	}
	ix.col = col

	if err := writeFingerprint(ix.dir, ix.embedder.ModelID()); err != nil {
		return err
	}

	ix.logger.Info("index reset")
	return nil
}

// Search embeds the query with the index's own embedder and returns up
// to topK hits ordered by ascending distance. An empty index yields an
// empty result, not an error, and skips the embedding call entirely.
func (ix *Index) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("vector: top_k must be positive, got %d", topK)
	}

	total := ix.col.Count()
	if total == 0 {
		return nil, nil
	}
	if topK > total {
		topK = total
	}

	vecs, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("vector: embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("vector: got %d embeddings for one query", len(vecs))
	}

	hits, err := ix.col.QueryEmbedding(ctx, vecs[0], topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector: query: %w", err)
	}

	results := make([]Result, len(hits))
	for i, hit := range hits {
		factID, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("vector: non-numeric document id %q: %w", hit.ID, err)
		}
		results[i] = Result{
			FactID:    factID,
			Content:   hit.Content,
			Type:      hit.Metadata["type"],
			SourceRef: hit.Metadata["source_reference"],
			Timestamp: hit.Metadata["timestamp"],
			Distance:  1 - hit.Similarity,
		}
	}

	return results, nil
}
