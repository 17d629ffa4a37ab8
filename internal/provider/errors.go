package provider

import "errors"

// Sentinel errors for provider operations. Backends map their HTTP and
// SDK failures onto these so callers can branch without knowing which
// backend is configured.
var (
	// ErrRateLimit indicates the provider returned a rate limit response.
	ErrRateLimit = errors.New("provider rate limited")

	// ErrContextLength indicates the request exceeded the model's context window.
	ErrContextLength = errors.New("context length exceeded")

	// ErrProviderDown indicates the provider is temporarily unavailable.
	ErrProviderDown = errors.New("provider unavailable")
)

// IsRetryable reports whether the error is transient and the same request
// may succeed if the caller retries it later.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimit) || errors.Is(err, ErrProviderDown)
}
