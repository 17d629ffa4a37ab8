package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

// maxResponseSize is the maximum response body size (10 MB).
// Protects against OOM from malformed or huge responses.
const maxResponseSize = 10 * 1024 * 1024

// buildChatRequest creates an OpenAI API chat request from a provider
// Request, merging request-level overrides with config defaults. The
// system prompt becomes the leading "system" role message.
func (p *Provider) buildChatRequest(req provider.Request) chatRequest {
	msgs := make([]chatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	cr := chatRequest{
		Model:    p.model,
		Messages: msgs,
	}

	if req.MaxTokens > 0 {
		cr.MaxTokens = req.MaxTokens
	} else {
		cr.MaxTokens = p.maxTokens
	}

	if req.Temperature != nil {
		cr.Temperature = req.Temperature
	} else {
		t := defaultTemperature
		cr.Temperature = &t
	}

	return cr
}

// newHTTPRequest creates an authenticated HTTP request for the OpenAI API.
func (p *Provider) newHTTPRequest(ctx context.Context, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	url := p.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	return httpReq, nil
}

// doPost sends a POST request and returns the response body and status code.
// The response body is limited to maxResponseSize bytes.
func (p *Provider) doPost(ctx context.Context, path string, payload any) ([]byte, int, error) {
	httpReq, err := p.newHTTPRequest(ctx, path, payload)
	if err != nil {
		return nil, 0, err
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, 0, mapConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("openai: read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// Complete sends a completion request and returns the full response.
func (p *Provider) Complete(ctx context.Context, req provider.Request) (provider.Response, error) {
	cr := p.buildChatRequest(req)

	body, statusCode, err := p.doPost(ctx, "/chat/completions", cr)
	if err != nil {
		return provider.Response{}, err
	}

	if httpErr := mapHTTPError(statusCode, body); httpErr != nil {
		return provider.Response{}, httpErr
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return provider.Response{}, fmt.Errorf("openai: unmarshal response: %w", err)
	}

	return fromResponse(&resp, p.model), nil
}
