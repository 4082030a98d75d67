package provider

import (
	"fmt"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider/anthropic"
	"github.com/relaychat/relay/pkg/llm/provider/google"
	"github.com/relaychat/relay/pkg/llm/provider/openai"
	"github.com/relaychat/relay/pkg/llm/provider/openrouter"
)

// Supported provider type constants
const (
	OpenRouter = llm.ProviderOpenRouter
	OpenAI     = llm.ProviderOpenAI
	Anthropic  = llm.ProviderAnthropic
	Google     = llm.ProviderGoogle
)

// SupportedProviders returns the list of all supported provider type names.
func SupportedProviders() []string {
	return []string{OpenRouter, OpenAI, Anthropic, Google}
}

// IsSupported returns true if the given provider type is recognized.
func IsSupported(providerType string) bool {
	switch providerType {
	case OpenRouter, OpenAI, Anthropic, Google:
		return true
	default:
		return false
	}
}

// New creates a new Provider instance for the given provider type using its
// default upstream endpoint. Returns an error if the type is not recognized.
func New(providerType string) (Provider, error) {
	return NewWithUpstream(providerType, "")
}

// NewWithUpstream creates a Provider pointed at a custom upstream base URL.
// An empty upstream selects the provider's default endpoint. Tests and
// deployments behind an egress gateway use this to redirect provider traffic.
func NewWithUpstream(providerType, upstream string) (Provider, error) {
	switch providerType {
	case OpenRouter:
		return openrouter.NewWithUpstream(upstream), nil
	case OpenAI:
		return openai.NewWithUpstream(upstream), nil
	case Anthropic:
		return anthropic.NewWithUpstream(upstream), nil
	case Google:
		return google.NewWithUpstream(upstream), nil
	default:
		return nil, fmt.Errorf("unknown provider type: %q (supported: %v)", providerType, SupportedProviders())
	}
}
