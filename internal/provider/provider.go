// Package provider defines the generation backend abstraction: a typed
// request/response contract plus the sentinel errors every backend maps
// its failures onto. Concrete implementations live in subpackages
// (provider/anthropic, provider/openai) and are selected once at startup
// by configuration.
package provider

import "context"

// Provider is the interface for a conversational generation backend.
type Provider interface {
	// Complete sends a completion request and returns the full response.
	// No retry is performed at this layer: transient failures surface to
	// the caller, which owns the retry decision.
	Complete(ctx context.Context, req Request) (Response, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}
