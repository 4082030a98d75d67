package llm

// Message roles accepted from callers. The system role is never
// caller-supplied; the dispatch layer injects the system prompt itself.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ChatMessage represents a single message in a conversation.
// Messages are immutable once created and their order within a conversation
// is significant: the sequence is replayed verbatim to the upstream provider.
type ChatMessage struct {
	ID      string `json:"id"`
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`

	// Timestamp is an ISO-8601 string for easier serialization across
	// the browser client, the proxy, and the terminal client.
	Timestamp string `json:"timestamp"`
}

// PromptMessage is the chat-completions wire shape shared by providers that
// accept a flat {role, content} message list.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
