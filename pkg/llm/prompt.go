package llm

// DefaultSystemPrompt is the assistant persona injected into every upstream
// request. It is identical across all providers and never supplied by the
// caller; caller-provided system messages are rejected at validation.
const DefaultSystemPrompt = `You are an expert AI assistant designed to help users with a wide range of tasks. You are knowledgeable, helpful, and provide accurate, well-structured responses. Always aim to be clear, concise, and professional while maintaining a friendly and approachable tone.

Key guidelines:
- Provide accurate and up-to-date information
- Break down complex topics into understandable explanations
- When uncertain, acknowledge limitations and suggest reliable sources
- Format responses clearly with proper structure when appropriate
- Be concise but thorough
- Adapt your communication style to match the user's needs and context`

// InjectSystemPrompt builds the chat-completions message list sent to
// providers that accept a flat {role, content} sequence: the system prompt
// first, then the conversation in input order. Assistant messages keep the
// "assistant" role token; everything else maps to "user".
func InjectSystemPrompt(messages []ChatMessage, prompt string) []PromptMessage {
	formatted := make([]PromptMessage, 0, len(messages)+1)
	formatted = append(formatted, PromptMessage{Role: RoleSystem, Content: prompt})

	for _, msg := range messages {
		role := RoleUser
		if msg.Role == RoleAssistant {
			role = RoleAssistant
		}
		formatted = append(formatted, PromptMessage{Role: role, Content: msg.Content})
	}

	return formatted
}
