// Package anthropic
package anthropic

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/relaychat/relay/pkg/llm"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 4096
)

// provider implements the Provider interface for Anthropic's Messages API.
type provider struct {
	baseURL string
}

// New creates an Anthropic provider using the default upstream endpoint.
func New() *provider { return NewWithUpstream("") }

// NewWithUpstream creates an Anthropic provider pointed at a custom base URL.
// An empty upstream selects the default endpoint.
func NewWithUpstream(upstream string) *provider {
	if upstream == "" {
		upstream = defaultBaseURL
	}
	return &provider{baseURL: upstream}
}

func (p *provider) Name() string {
	return llm.ProviderAnthropic
}

// BuildRequest builds an Anthropic Messages API call. The system prompt goes
// in the top-level system field, never as a message; the messages sequence
// carries only user and assistant entries.
func (p *provider) BuildRequest(messages []llm.ChatMessage, config llm.AIConfig) (*llm.ProviderRequest, error) {
	formatted := make([]message, 0, len(messages))
	for _, msg := range messages {
		role := llm.RoleUser
		if msg.Role == llm.RoleAssistant {
			role = llm.RoleAssistant
		}
		formatted = append(formatted, message{Role: role, Content: msg.Content})
	}

	body, err := json.Marshal(messagesRequest{
		Model:     config.ModelID,
		MaxTokens: maxTokens,
		System:    llm.DefaultSystemPrompt,
		Messages:  formatted,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling anthropic request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("x-api-key", config.APIKey)
	header.Set("anthropic-version", apiVersion)

	return &llm.ProviderRequest{
		URL:    p.baseURL + "/v1/messages",
		Header: header,
		Body:   body,
	}, nil
}

func (p *provider) ParseResponse(payload []byte) (string, error) {
	var resp messagesResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("parsing anthropic response: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", nil
	}

	return resp.Content[0].Text, nil
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
