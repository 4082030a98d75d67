// Package openai
package openai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/relaychat/relay/pkg/llm"
)

const defaultBaseURL = "https://api.openai.com/v1"

// provider implements the Provider interface for OpenAI's Chat Completions API.
type provider struct {
	baseURL string
}

// New creates an OpenAI provider using the default upstream endpoint.
func New() *provider { return NewWithUpstream("") }

// NewWithUpstream creates an OpenAI provider pointed at a custom base URL.
// An empty upstream selects the default endpoint.
func NewWithUpstream(upstream string) *provider {
	if upstream == "" {
		upstream = defaultBaseURL
	}
	return &provider{baseURL: upstream}
}

func (p *provider) Name() string {
	return llm.ProviderOpenAI
}

func (p *provider) BuildRequest(messages []llm.ChatMessage, config llm.AIConfig) (*llm.ProviderRequest, error) {
	body, err := json.Marshal(chatRequest{
		Model:    config.ModelID,
		Messages: llm.InjectSystemPrompt(messages, llm.DefaultSystemPrompt),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling openai request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("Authorization", "Bearer "+config.APIKey)

	return &llm.ProviderRequest{
		URL:    p.baseURL + "/chat/completions",
		Header: header,
		Body:   body,
	}, nil
}

func (p *provider) ParseResponse(payload []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("parsing openai response: %w", err)
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
