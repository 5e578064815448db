package models

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamOptions controls streaming behavior of the completions endpoint.
type StreamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

// OpenAIChatCompletionRequest is the request body for /chat/completions.
type OpenAIChatCompletionRequest struct {
	Model         string         `json:"model"`
	Messages      []Message      `json:"messages"`
	Stream        bool           `json:"stream"`
	Temperature   *float32       `json:"temperature,omitempty"`
	StreamOptions *StreamOptions `json:"stream_options,omitempty"`
}

// OpenAIChatCompletionResponse is one SSE chunk of a streamed completion.
type OpenAIChatCompletionResponse struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}
