package google

// part is a single text part within a content entry.
type part struct {
	Text string `json:"text"`
}

// content is one conversation turn: role "user" or "model".
type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

// instruction carries the system prompt.
type instruction struct {
	Parts []part `json:"parts"`
}

// generationConfig holds the fixed sampling parameters sent with every call.
type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateRequest is the generateContent request body.
type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *instruction     `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

// generateResponse is the generateContent response body.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// errorResponse is the error envelope returned on non-2xx statuses.
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
