package anthropic

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	sdkanthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

func TestComplete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_123",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "text", "text": "Hello!"}],
			"model": "claude-3-5-sonnet-20241022",
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	a := newTestProvider(srv.URL)

	resp, err := a.Complete(context.Background(), provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Hello!" {
		t.Errorf("expected text 'Hello!', got %q", resp.Text)
	}
	if resp.Model != "anthropic/claude-3-5-sonnet-20241022" {
		t.Errorf("expected model 'anthropic/claude-3-5-sonnet-20241022', got %q", resp.Model)
	}
	if resp.FinishReason != provider.FinishReasonStop {
		t.Errorf("expected finish reason 'stop', got %q", resp.FinishReason)
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("expected total tokens 15, got %d", resp.Usage.TotalTokens)
	}
}

func TestComplete_RateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error","message":"rate limited"}}`))
	}))
	defer srv.Close()

	a := newTestProvider(srv.URL)

	_, err := a.Complete(context.Background(), provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, provider.ErrRateLimit) {
		t.Errorf("expected ErrRateLimit, got %v", err)
	}
}

func TestComplete_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error","message":"overloaded"}}`))
	}))
	defer srv.Close()

	a := newTestProvider(srv.URL)

	_, err := a.Complete(context.Background(), provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, provider.ErrProviderDown) {
		t.Errorf("expected ErrProviderDown, got %v", err)
	}
}

func TestComplete_ContextLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"prompt is too long: context length exceeded"}}`))
	}))
	defer srv.Close()

	a := newTestProvider(srv.URL)

	_, err := a.Complete(context.Background(), provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
		},
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, provider.ErrContextLength) {
		t.Errorf("expected ErrContextLength, got %v", err)
	}
}

func TestComplete_SystemPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_789",
			"type": "message",
			"role": "assistant",
			"content": [{"type": "text", "text": "Acknowledged."}],
			"model": "claude-3-5-sonnet-20241022",
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 30, "output_tokens": 3}
		}`))
	}))
	defer srv.Close()

	a := newTestProvider(srv.URL)

	resp, err := a.Complete(context.Background(), provider.Request{
		System: "You are Jarvis.",
		Messages: []provider.Message{
			{Role: provider.RoleUser, Content: "Hello"},
			{Role: provider.RoleAssistant, Content: "Hi"},
			{Role: provider.RoleUser, Content: "Remember me?"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Acknowledged." {
		t.Errorf("expected text 'Acknowledged.', got %q", resp.Text)
	}
}

func TestModelName(t *testing.T) {
	a := newTestProvider("http://localhost:0")
	if a.ModelName() != "claude-3-5-sonnet-20241022" {
		t.Errorf("expected model name 'claude-3-5-sonnet-20241022', got %q", a.ModelName())
	}
}

// newTestProvider creates an Anthropic provider pointed at the given httptest server URL.
func newTestProvider(baseURL string) *Anthropic {
	client := sdkanthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey("test-key"),
		option.WithMaxRetries(0),
	)
	return &Anthropic{
		model:     "claude-3-5-sonnet-20241022",
		maxTokens: 2000,
		client:    &client,
		logger:    slog.New(slog.DiscardHandler),
	}
}
