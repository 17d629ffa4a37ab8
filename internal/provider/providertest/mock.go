// Package providertest provides test helpers for the provider package.
package providertest

import (
	"context"
	"sync"

	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

// MockProvider is a configurable test double for provider.Provider.
// Set the Func fields to control behavior. An unset CompleteFunc panics
// on call; an unset ModelNameFunc returns "mock/test".
type MockProvider struct {
	CompleteFunc  func(ctx context.Context, req provider.Request) (provider.Response, error)
	ModelNameFunc func() string

	mu            sync.Mutex
	CompleteCalls int
	LastRequest   provider.Request
}

// Complete delegates to CompleteFunc, tracking the call count and the
// most recent request for assertions.
func (m *MockProvider) Complete(ctx context.Context, req provider.Request) (provider.Response, error) {
	m.mu.Lock()
	m.CompleteCalls++
	m.LastRequest = req
	m.mu.Unlock()
	return m.CompleteFunc(ctx, req)
}

// ModelName delegates to ModelNameFunc.
func (m *MockProvider) ModelName() string {
	if m.ModelNameFunc == nil {
		return "mock/test"
	}
	return m.ModelNameFunc()
}

// Interface guard.
var _ provider.Provider = (*MockProvider)(nil)
