package anthropic

import (
	"strings"

	sdkanthropic "github.com/anthropics/anthropic-sdk-go"

	"github.com/arunavtnt-prog/jarvis/internal/provider"
)

// convertRequest transforms a provider.Request into Anthropic SDK
// parameters. The system prompt goes into the dedicated System field, as
// the Messages API takes it out of band.
func convertRequest(req provider.Request, model string, maxTokens int) sdkanthropic.MessageNewParams {
	params := sdkanthropic.MessageNewParams{
		Model:    sdkanthropic.Model(model),
		Messages: convertMessages(req.Messages),
	}

	if req.System != "" {
		params.System = []sdkanthropic.TextBlockParam{{Text: req.System}}
	}

	// MaxTokens: request-level override takes precedence over the default.
	params.MaxTokens = int64(maxTokens)
	if req.MaxTokens > 0 {
		params.MaxTokens = int64(req.MaxTokens)
	}

	if req.Temperature != nil {
		params.Temperature = sdkanthropic.Float(*req.Temperature)
	}

	return params
}

// convertMessages transforms conversation messages into Anthropic SDK
// message params. Anything that is not an assistant message is sent as a
// user message.
func convertMessages(msgs []provider.Message) []sdkanthropic.MessageParam {
	result := make([]sdkanthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case provider.RoleAssistant:
			result = append(result, sdkanthropic.NewAssistantMessage(
				sdkanthropic.NewTextBlock(m.Content),
			))
		default:
			result = append(result, sdkanthropic.NewUserMessage(
				sdkanthropic.NewTextBlock(m.Content),
			))
		}
	}
	return result
}

// convertResponse transforms an Anthropic SDK Message into a
// provider.Response, concatenating all text blocks.
func convertResponse(msg *sdkanthropic.Message, model string) provider.Response {
	var text strings.Builder
	for _, block := range msg.Content {
		if v, ok := block.AsAny().(sdkanthropic.TextBlock); ok {
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(v.Text)
		}
	}

	return provider.Response{
		Text:         text.String(),
		Model:        "anthropic/" + model,
		FinishReason: convertStopReason(msg.StopReason),
		Usage: provider.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}
}

// convertStopReason maps an Anthropic stop reason to a FinishReason.
func convertStopReason(reason sdkanthropic.StopReason) provider.FinishReason {
	switch reason {
	case sdkanthropic.StopReasonEndTurn, sdkanthropic.StopReasonStopSequence:
		return provider.FinishReasonStop
	case sdkanthropic.StopReasonMaxTokens:
		return provider.FinishReasonLength
	case sdkanthropic.StopReasonRefusal:
		return provider.FinishReasonFiltering
	default:
		return provider.FinishReasonStop
	}
}
