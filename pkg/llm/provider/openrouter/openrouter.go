// Package openrouter
package openrouter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/relaychat/relay/pkg/llm"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Referer and title headers identify the calling application to OpenRouter's
// model ranking.
const (
	refererHeader = "https://ai-chat.app"
	titleHeader   = "AI Chat"
)

// provider implements the Provider interface for OpenRouter's
// chat-completions API.
type provider struct {
	baseURL string
}

// New creates an OpenRouter provider using the default upstream endpoint.
func New() *provider { return NewWithUpstream("") }

// NewWithUpstream creates an OpenRouter provider pointed at a custom base URL.
// An empty upstream selects the default endpoint.
func NewWithUpstream(upstream string) *provider {
	if upstream == "" {
		upstream = defaultBaseURL
	}
	return &provider{baseURL: upstream}
}

// Name
func (p *provider) Name() string {
	return llm.ProviderOpenRouter
}

func (p *provider) BuildRequest(messages []llm.ChatMessage, config llm.AIConfig) (*llm.ProviderRequest, error) {
	body, err := json.Marshal(chatRequest{
		Model:    config.ModelID,
		Messages: llm.InjectSystemPrompt(messages, llm.DefaultSystemPrompt),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling openrouter request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+config.APIKey)
	header.Set("HTTP-Referer", refererHeader)
	header.Set("X-Title", titleHeader)

	return &llm.ProviderRequest{
		URL:    p.baseURL + "/chat/completions",
		Header: header,
		Body:   body,
	}, nil
}

func (p *provider) ParseResponse(payload []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("parsing openrouter response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *provider) ParseError(status int, payload []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return errors.New("Request failed")
	}
	if resp.Error.Message != "" {
		return errors.New(resp.Error.Message)
	}
	return fmt.Errorf("HTTP %d", status)
}
