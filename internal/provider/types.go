package provider

// Role identifies the sender of a message in a conversation.
type Role string

// Role constants for conversation messages. System instructions travel in
// Request.System rather than as a message role, because the Anthropic API
// takes them out of band; backends that want an inline system message
// synthesize one themselves.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// FinishReason describes why the model stopped generating.
type FinishReason string

// FinishReason constants for model completion termination.
const (
	FinishReasonStop      FinishReason = "stop"
	FinishReasonLength    FinishReason = "length"
	FinishReasonFiltering FinishReason = "filtering"
)

// Message is a single conversation message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is the input to a Provider.Complete call.
type Request struct {
	// System is the system persona prompt, applied before Messages.
	System string `json:"system,omitempty"`

	// Messages is the ordered conversation: alternating user/assistant
	// turns ending with the current user message.
	Messages []Message `json:"messages"`

	// MaxTokens caps the generated output. Zero means the backend's
	// configured default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature overrides the backend default when non-nil.
	Temperature *float64 `json:"temperature,omitempty"`
}

// Response is the output of a Provider.Complete call.
type Response struct {
	// Text is the generated completion.
	Text string `json:"text"`

	// Model identifies the backend and model that produced the text,
	// in "provider/model" form.
	Model string `json:"model"`

	FinishReason FinishReason `json:"finish_reason"`
	Usage        Usage        `json:"usage"`
}

// Usage tracks token consumption for a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
