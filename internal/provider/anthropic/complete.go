package anthropic

import (
	"context"

	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

// Complete sends a synchronous completion request to the Anthropic
// Messages API.
func (a *Anthropic) Complete(ctx context.Context, req provider.Request) (provider.Response, error) {
	params := convertRequest(req, a.model, a.maxTokens)

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return provider.Response{}, mapError(err)
	}

	return convertResponse(msg, a.model), nil
}
