// Package security provides input sanitization and syntactic validation for
// chat requests. Sanitization is a best-effort denylist against markup and
// script injection when content is later rendered as rich text; it is not a
// substitute for output-side escaping by the renderer.
package security

import (
	"regexp"
	"strings"
)

var (
	jsProtocolPattern = regexp.MustCompile(`(?i)javascript:`)
	eventAttrPattern  = regexp.MustCompile(`(?i)on\w+=`)
	apiKeyPattern     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// minAPIKeyLength is the shortest key any supported provider issues.
const minAPIKeyLength = 20

// SanitizeInput strips leading/trailing whitespace, angle brackets, the
// javascript: protocol token, and attribute-style on<event>= tokens from user
// content. Removal runs to a fixed point so the transform is idempotent even
// when stripping one token exposes another.
func SanitizeInput(input string) string {
	out := strings.TrimSpace(input)
	out = strings.ReplaceAll(out, "<", "")
	out = strings.ReplaceAll(out, ">", "")

	for {
		next := jsProtocolPattern.ReplaceAllString(out, "")
		next = eventAttrPattern.ReplaceAllString(next, "")
		if next == out {
			break
		}
		out = next
	}

	return strings.TrimSpace(out)
}

// ValidateAPIKey is a purely syntactic check on the key's character set and
// minimum length. It never contacts the provider and cannot detect revoked
// keys; those only surface as provider errors at dispatch time.
func ValidateAPIKey(apiKey string) bool {
	if len(apiKey) < minAPIKeyLength {
		return false
	}
	return apiKeyPattern.MatchString(apiKey)
}
