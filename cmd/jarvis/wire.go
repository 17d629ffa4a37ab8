package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arunavtnt-prog/jarvis/internal/config"
	"github.com/arunavtnt-prog/jarvis/internal/embedding"
	"github.com/arunavtnt-prog/jarvis/internal/provider"
	"github.com/arunavtnt-prog/jarvis/internal/provider/anthropic"
	"github.com/arunavtnt-prog/jarvis/internal/provider/openai"
	"github.com/arunavtnt-prog/jarvis/internal/vector"
)

// loadConfig reads the configuration named by --config, falling back to
// the standard search locations. No file anywhere means built-in
// defaults with credentials from the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.ResolvePath()
	}
	return config.Load(path)
}

// newLogger builds the process logger. Diagnostics go to stderr so
// stdout stays clean for command output.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// newProvider constructs the generation backend selected by cfg.
func newProvider(cfg config.LLMConfig, logger *slog.Logger) (provider.Provider, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.New(cfg, logger)
	case config.ProviderOpenAI:
		return openai.New(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm.provider %q", cfg.Provider)
	}
}

// openIndex opens the vector index with the configured embedder.
func openIndex(cfg *config.Config, logger *slog.Logger) (*vector.Index, error) {
	emb, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	return vector.Open(cfg.Paths.VectorDir, emb, logger)
}
