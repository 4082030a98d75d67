package llm

// Provider names recognized by the proxy.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGoogle     = "google"
)

// AIConfig selects the upstream provider and carries the caller's credentials.
// The API key is a per-request bearer secret: it is forwarded to the provider
// and never persisted server-side.
type AIConfig struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	ModelID  string `json:"modelId"`
}

// ChatRequest is the internal representation of one chat call.
// It is constructed per call and never stored.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Config   AIConfig      `json:"config"`
}
