// Package google
package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/relaychat/relay/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// roleModel is Google's role token for model output; the internal
// "assistant" role maps to it.
const roleModel = "model"

// provider implements the Provider interface for Google's Generative
// Language API (generateContent).
type provider struct {
	baseURL string
}

// New creates a Google provider using the default upstream endpoint.
func New() *provider { return NewWithUpstream("") }

// NewWithUpstream creates a Google provider pointed at a custom base URL.
// An empty upstream selects the default endpoint.
func NewWithUpstream(upstream string) *provider {
	if upstream == "" {
		upstream = defaultBaseURL
	}
	return &provider{baseURL: upstream}
}

func (p *provider) Name() string {
	return llm.ProviderGoogle
}

// BuildRequest builds a generateContent call. Google authenticates via an
// API key in the query string rather than a header, and takes the system
// prompt as a systemInstruction field.
func (p *provider) BuildRequest(messages []llm.ChatMessage, config llm.AIConfig) (*llm.ProviderRequest, error) {
	contents := make([]content, 0, len(messages))
	for _, msg := range messages {
		role := llm.RoleUser
		if msg.Role == llm.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, content{
			Role:  role,
			Parts: []part{{Text: msg.Content}},
		})
	}

	body, err := json.Marshal(generateRequest{
		Contents: contents,
		SystemInstruction: &instruction{
			Parts: []part{{Text: llm.DefaultSystemPrompt}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling google request: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	return &llm.ProviderRequest{
		URL: fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
			p.baseURL, url.PathEscape(config.ModelID), url.QueryEscape(config.APIKey)),
		Header: header,
		Body:   body,
	}, nil
}

func (p *provider) ParseResponse(payload []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("parsing google response: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
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
