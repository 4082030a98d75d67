package openai

import "github.com/relaychat/relay/pkg/llm"

// chatRequest is OpenAI's chat-completions request body.
type chatRequest struct {
	Model    string              `json:"model"`
	Messages []llm.PromptMessage `json:"messages"`
}

// chatResponse is OpenAI's chat-completions response body.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorResponse is the error envelope returned on non-2xx statuses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
