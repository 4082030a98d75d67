package anthropic

// message is a single entry in the Messages API conversation. Only user and
// assistant roles appear here; the system prompt is a separate request field.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesRequest is Anthropic's Messages API request body.
type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

// messagesResponse is Anthropic's Messages API response body.
type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// errorResponse is the error envelope returned on non-2xx statuses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
