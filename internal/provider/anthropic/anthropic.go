// Package anthropic implements the generation backend on the Anthropic
// Messages API, using the official SDK.
package anthropic

import (
	"errors"
	"log/slog"
	"net/http"

	sdkanthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/arunavtnt-prog/jarvis/internal/config"
	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

// Interface guard.
var _ provider.Provider = (*Anthropic)(nil)

// Anthropic is a provider.Provider backed by the Anthropic Messages API.
type Anthropic struct {
	model     string
	maxTokens int
	client    *sdkanthropic.Client
	logger    *slog.Logger
}

// New builds the backend from cfg. The API key comes from the config,
// falling back to ANTHROPIC_API_KEY.
func New(cfg config.LLMConfig, logger *slog.Logger) (*Anthropic, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	apiKey := cfg.ResolveAPIKey()
	if apiKey == "" {
		return nil, errors.New("anthropic: API key is required (set llm.api_key or ANTHROPIC_API_KEY)")
	}
	if cfg.Model == "" {
		return nil, errors.New("anthropic: model must not be empty")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.ParsedTimeout()}),
		// Retries are the caller's decision, not the SDK's.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := sdkanthropic.NewClient(opts...)

	return &Anthropic{
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		client:    &client,
		logger:    logger,
	}, nil
}

// ModelName implements provider.Provider.
func (a *Anthropic) ModelName() string {
	return a.model
}
