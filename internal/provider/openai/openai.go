// Package openai implements the generation backend on the OpenAI Chat
// Completions API over plain HTTP.
package openai

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arunavtnt-prog/jarvis/internal/config"
	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

// Interface guard.
var _ provider.Provider = (*Provider)(nil)

const defaultBaseURL = "https://api.openai.com/v1"

// defaultTemperature is used when the request does not set one.
const defaultTemperature = 0.7

// Provider is a provider.Provider backed by the OpenAI Chat Completions API.
type Provider struct {
	model     string
	baseURL   string
	apiKey    string
	maxTokens int
	client    *http.Client
	logger    *slog.Logger
}

// New builds the backend from cfg. The API key comes from the config,
// falling back to OPENAI_API_KEY.
func New(cfg config.LLMConfig, logger *slog.Logger) (*Provider, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, errors.New("openai: API key is required (set llm.api_key or OPENAI_API_KEY)")
	}
	if cfg.Model == "" {
		return nil, errors.New("openai: model must not be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Provider{
		model:     cfg.Model,
		baseURL:   baseURL,
		apiKey:    apiKey,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{Timeout: cfg.ParsedTimeout()},
		logger:    logger,
	}, nil
}

// ModelName implements provider.Provider.
func (p *Provider) ModelName() string {
	return p.model
}
