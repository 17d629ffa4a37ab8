// Package config handles YAML configuration loading, environment variable
// expansion, and validation for jarvis.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Provider names accepted in the llm and embedding sections.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

// Config is the top-level configuration structure. It is constructed once
// at startup and passed into each component's constructor; library code
// never reads configuration from the environment on its own.
type Config struct {
	User      UserConfig      `yaml:"user"`
	Paths     PathsConfig     `yaml:"paths"`
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	History   HistoryConfig   `yaml:"history"`
}

// UserConfig identifies the person whose chat history feeds the memory.
type UserConfig struct {
	// Name is matched against message senders during ingestion and names
	// the persona in generation prompts.
	Name string `yaml:"name"`
}

// PathsConfig locates the on-disk stores. Relative paths are kept as-is
// so the data directory can travel with the working directory.
type PathsConfig struct {
	// DataDir is the parent directory for the default store locations.
	DataDir string `yaml:"data_dir"`

	// FactsDB is the SQLite fact database file. Defaults to {DataDir}/facts.db.
	FactsDB string `yaml:"facts_db"`

	// VectorDir is the vector index directory. Defaults to {DataDir}/vectors.
	VectorDir string `yaml:"vector_dir"`

	// HistoryLog is the append-only conversation log (JSONL).
	// Defaults to {DataDir}/conversations.jsonl.
	HistoryLog string `yaml:"history_log"`
}

// LLMConfig selects and configures the generation backend.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   string `yaml:"timeout"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	BatchSize int    `yaml:"batch_size"`
}

// RetrievalConfig controls vector search.
type RetrievalConfig struct {
	// TopK is the number of facts retrieved per query.
	TopK int `yaml:"top_k"`
}

// HistoryConfig controls the conversation history window.
type HistoryConfig struct {
	// Window is the number of past turns included in each prompt.
	Window int `yaml:"window"`

	// Load is the number of turns read back from the durable log at startup.
	Load int `yaml:"load"`
}

const (
	defaultUserName       = "Arunav"
	defaultDataDir        = "memory_db"
	defaultAnthropicModel = "claude-3-5-sonnet-20241022"
	defaultOpenAIModel    = "gpt-4o"
	defaultOllamaModel    = "nomic-embed-text"
	defaultOpenAIEmbModel = "text-embedding-3-small"
	defaultMaxTokens      = 2000
	defaultLLMTimeout     = "60s"
	defaultBatchSize      = 100
	defaultTopK           = 10
	defaultHistoryWindow  = 5
	defaultHistoryLoad    = 20
)

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.User.Name == "" {
		c.User.Name = defaultUserName
	}
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.FactsDB == "" {
		c.Paths.FactsDB = filepath.Join(c.Paths.DataDir, "facts.db")
	}
	if c.Paths.VectorDir == "" {
		c.Paths.VectorDir = filepath.Join(c.Paths.DataDir, "vectors")
	}
	if c.Paths.HistoryLog == "" {
		c.Paths.HistoryLog = filepath.Join(c.Paths.DataDir, "conversations.jsonl")
	}

	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderAnthropic
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.Model = defaultOpenAIModel
		default:
			c.LLM.Model = defaultAnthropicModel
		}
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaultMaxTokens
	}
	if c.LLM.Timeout == "" {
		c.LLM.Timeout = defaultLLMTimeout
	}

	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOllama
	}
	if c.Embedding.Model == "" {
		switch c.Embedding.Provider {
		case ProviderOpenAI:
			c.Embedding.Model = defaultOpenAIEmbModel
		default:
			c.Embedding.Model = defaultOllamaModel
		}
	}
	if c.Embedding.BatchSize == 0 {
		c.Embedding.BatchSize = defaultBatchSize
	}

	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = defaultTopK
	}
	if c.History.Window == 0 {
		c.History.Window = defaultHistoryWindow
	}
	if c.History.Load == 0 {
		c.History.Load = defaultHistoryLoad
	}
}

// ResolveAPIKey returns the generation API key, falling back to the
// provider's conventional environment variable when the config field
// is empty.
func (c *LLMConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	switch c.Provider {
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// ResolveAPIKey returns the embedding API key with the same environment
// fallback rules as LLMConfig.ResolveAPIKey.
func (c *EmbeddingConfig) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if c.Provider == ProviderOpenAI {
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}

// ParsedTimeout returns the generation timeout as a time.Duration.
// Assumes the value has been validated by Validate.
func (c *LLMConfig) ParsedTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// Validate checks the configuration for startup-fatal problems and
// returns all of them joined, not just the first.
func Validate(cfg *Config) error {
	var errs []error
	errs = append(errs, userErrors(cfg)...)
	errs = append(errs, llmErrors(cfg)...)
	errs = append(errs, embeddingErrors(cfg)...)
	errs = append(errs, historyErrors(cfg)...)
	return errors.Join(errs...)
}

// ValidateEmbedding checks only the settings the ingestion and retrieval
// paths depend on. Commands that never call a generation backend use this
// so a missing LLM key does not block index maintenance.
func ValidateEmbedding(cfg *Config) error {
	return errors.Join(embeddingErrors(cfg)...)
}

func userErrors(cfg *Config) []error {
	var errs []error
	if cfg.User.Name == "" {
		errs = append(errs, errors.New("config: user.name must not be empty"))
	}
	return errs
}

func llmErrors(cfg *Config) []error {
	var errs []error

	switch cfg.LLM.Provider {
	case ProviderAnthropic, ProviderOpenAI:
		if cfg.LLM.ResolveAPIKey() == "" {
			errs = append(errs, fmt.Errorf(
				"config: llm.provider %q requires an API key (set llm.api_key or %s)",
				cfg.LLM.Provider, conventionalKeyVar(cfg.LLM.Provider),
			))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"config: unknown llm.provider %q (supported: anthropic, openai)", cfg.LLM.Provider))
	}

	if _, err := time.ParseDuration(cfg.LLM.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("config: invalid llm.timeout %q: %w", cfg.LLM.Timeout, err))
	}
	if cfg.LLM.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("config: llm.max_tokens must be positive, got %d", cfg.LLM.MaxTokens))
	}
	return errs
}

func embeddingErrors(cfg *Config) []error {
	var errs []error

	switch cfg.Embedding.Provider {
	case ProviderOllama:
	case ProviderOpenAI:
		if cfg.Embedding.ResolveAPIKey() == "" {
			errs = append(errs, errors.New(
				"config: embedding.provider \"openai\" requires an API key (set embedding.api_key or OPENAI_API_KEY)"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"config: unknown embedding.provider %q (supported: ollama, openai)", cfg.Embedding.Provider))
	}

	if cfg.Embedding.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("config: embedding.batch_size must be positive, got %d", cfg.Embedding.BatchSize))
	}
	if cfg.Retrieval.TopK <= 0 {
		errs = append(errs, fmt.Errorf("config: retrieval.top_k must be positive, got %d", cfg.Retrieval.TopK))
	}
	return errs
}

func historyErrors(cfg *Config) []error {
	var errs []error
	if cfg.History.Window <= 0 {
		errs = append(errs, fmt.Errorf("config: history.window must be positive, got %d", cfg.History.Window))
	}
	if cfg.History.Load < cfg.History.Window {
		errs = append(errs, fmt.Errorf(
			"config: history.load (%d) must be at least history.window (%d)",
			cfg.History.Load, cfg.History.Window))
	}
	return errs
}

func conventionalKeyVar(provider string) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}
