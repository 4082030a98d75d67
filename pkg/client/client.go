// Package client is the proxy's calling side: it sends chat requests to the
// relay backend over HTTP and surfaces the same {content}/{error} contract
// the backend exposes. The terminal chat command and the browser client are
// structurally identical consumers of this contract.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/relaychat/relay/pkg/llm"
)

// DefaultTarget is the backend URL used when no target is configured.
const DefaultTarget = "http://localhost:3001"

// Client calls the relay backend.
type Client struct {
	target     string
	httpClient *http.Client
}

// New creates a Client for the given backend URL. An empty target selects
// DefaultTarget.
func New(target string) *Client {
	if target == "" {
		target = DefaultTarget
	}
	return &Client{
		target: target,
		httpClient: &http.Client{
			// The backend forwards to LLM providers, which can be slow
			Timeout: 90 * time.Second,
		},
	}
}

// SendMessage posts one chat request to the backend and returns the
// normalized result. Like the backend's dispatcher, it never returns a Go
// error: every failure resolves to a ChatResponse with Error set.
func (c *Client) SendMessage(ctx context.Context, messages []llm.ChatMessage, config llm.AIConfig) *llm.ChatResponse {
	if config.APIKey == "" {
		return &llm.ChatResponse{Error: "API key is required. Please configure your settings."}
	}

	body, err := json.Marshal(llm.ChatRequest{Messages: messages, Config: config})
	if err != nil {
		return apiError(err.Error())
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.target+"/api/chat/message", bytes.NewReader(body))
	if err != nil {
		return apiError(err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apiError("request failed")
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return apiError("failed to read response")
	}

	if httpResp.StatusCode != http.StatusOK {
		var errResp llm.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return apiError(errResp.Error)
		}
		return apiError(fmt.Sprintf("HTTP %d", httpResp.StatusCode))
	}

	var resp llm.ChatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return apiError("invalid response from backend")
	}

	return &llm.ChatResponse{Content: resp.Content}
}

func apiError(detail string) *llm.ChatResponse {
	return &llm.ChatResponse{Error: fmt.Sprintf("API Error: %s", detail)}
}
