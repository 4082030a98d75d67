package provider

import (
	"github.com/relaychat/relay/pkg/llm"
)

// Provider translates the internal chat format into one upstream LLM API's
// native wire format and back. Each implementation knows its provider's
// endpoint, auth scheme, request body, and response shape. Adapters never
// retry; a failed upstream call surfaces as a single error to the dispatcher.
type Provider interface {
	// Name returns the canonical provider name (e.g., "openrouter", "anthropic")
	Name() string

	// BuildRequest builds the provider-native wire call for the given
	// conversation. The system prompt is injected here, never by the caller.
	BuildRequest(messages []llm.ChatMessage, config llm.AIConfig) (*llm.ProviderRequest, error)

	// ParseResponse extracts the assistant's text content from a successful
	// provider response body. A missing content field yields an empty string,
	// never an error.
	ParseResponse(payload []byte) (string, error)

	// ParseError converts a non-2xx provider response into an error carrying
	// the provider's human-readable message. A parseable body with no message
	// falls back to "HTTP <status>"; an unreadable body to "Request failed".
	ParseError(status int, payload []byte) error
}
