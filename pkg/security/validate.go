package security

import (
	"fmt"
	"strings"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider"
)

// maxContentLength bounds a single message's content at the validation boundary.
const maxContentLength = 10000

// FieldError describes one validation failure with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateChatRequest checks the request's shape before any network call:
// non-empty message sequence, user/assistant roles only, trimmed non-empty
// content within the length bound, a recognized provider, and non-empty
// credentials. Returns nil when the request is valid.
func ValidateChatRequest(req *llm.ChatRequest) []FieldError {
	var errs []FieldError

	if len(req.Messages) == 0 {
		errs = append(errs, FieldError{
			Field:   "messages",
			Message: "Messages must be a non-empty array",
		})
	}

	for i, msg := range req.Messages {
		if msg.Role != llm.RoleUser && msg.Role != llm.RoleAssistant {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("messages[%d].role", i),
				Message: "Invalid message role",
			})
		}
		if strings.TrimSpace(msg.Content) == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("messages[%d].content", i),
				Message: "Message content is required",
			})
		} else if len(msg.Content) > maxContentLength {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("messages[%d].content", i),
				Message: "Message too long",
			})
		}
	}

	if !provider.IsSupported(req.Config.Provider) {
		errs = append(errs, FieldError{
			Field:   "config.provider",
			Message: "Invalid provider",
		})
	}
	if req.Config.APIKey == "" {
		errs = append(errs, FieldError{
			Field:   "config.apiKey",
			Message: "API key is required",
		})
	}
	if req.Config.ModelID == "" {
		errs = append(errs, FieldError{
			Field:   "config.modelId",
			Message: "Model ID is required",
		})
	}

	return errs
}

// SanitizeMessages returns a copy of the messages with every content field
// run through SanitizeInput. The input slice is not modified.
func SanitizeMessages(messages []llm.ChatMessage) []llm.ChatMessage {
	sanitized := make([]llm.ChatMessage, len(messages))
	for i, msg := range messages {
		msg.Content = SanitizeInput(msg.Content)
		sanitized[i] = msg
	}
	return sanitized
}
