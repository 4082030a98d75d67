package llm

// ChatResponse is the uniform result of one chat call.
// Exactly one of Content or Error is meaningful: when Error is set the call
// failed and Content must be ignored by the caller.
type ChatResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`

	// AuthFailure marks responses caused by an upstream 401/403 so the
	// route layer can feed the brute-force tracker. Never serialized.
	AuthFailure bool `json:"-"`
}

// ErrorResponse is the generic JSON error envelope returned by the proxy.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
