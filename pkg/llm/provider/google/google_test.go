package google_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider"
	"github.com/relaychat/relay/pkg/llm/provider/google"
)

var _ = Describe("Google Provider", func() {
	var p provider.Provider

	config := llm.AIConfig{
		Provider: "google",
		APIKey:   "AIzaSy0123456789abcdef",
		ModelID:  "gemini-2.0-flash",
	}

	messages := []llm.ChatMessage{
		{ID: "1", Role: "user", Content: "Hello"},
		{ID: "2", Role: "assistant", Content: "Hi! How can I help?"},
	}

	BeforeEach(func() {
		p = google.New()
	})

	Describe("Name", func() {
		It("returns 'google'", func() {
			Expect(p.Name()).To(Equal("google"))
		})
	})

	Describe("BuildRequest", func() {
		It("puts the API key in the query string, not a header", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(Equal(
				"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=" + config.APIKey))
			Expect(req.Header.Get("Authorization")).To(BeEmpty())
			Expect(req.Header.Get("x-api-key")).To(BeEmpty())
		})

		It("escapes the API key in the query string", func() {
			weird := config
			weird.APIKey = "key with&special=chars0"
			req, err := p.BuildRequest(messages, weird)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(HaveSuffix("?key=key+with%26special%3Dchars0"))
		})

		It("maps assistant messages to the model role", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())

			var body struct {
				Contents []struct {
					Role  string `json:"role"`
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"contents"`
				SystemInstruction struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"systemInstruction"`
				GenerationConfig struct {
					Temperature     float64 `json:"temperature"`
					TopK            int     `json:"topK"`
					TopP            float64 `json:"topP"`
					MaxOutputTokens int     `json:"maxOutputTokens"`
				} `json:"generationConfig"`
			}
			Expect(json.Unmarshal(req.Body, &body)).To(Succeed())

			Expect(body.Contents).To(HaveLen(2))
			Expect(body.Contents[0].Role).To(Equal("user"))
			Expect(body.Contents[0].Parts[0].Text).To(Equal("Hello"))
			Expect(body.Contents[1].Role).To(Equal("model"))

			Expect(body.SystemInstruction.Parts[0].Text).To(Equal(llm.DefaultSystemPrompt))

			Expect(body.GenerationConfig.Temperature).To(Equal(0.7))
			Expect(body.GenerationConfig.TopK).To(Equal(40))
			Expect(body.GenerationConfig.TopP).To(Equal(0.95))
			Expect(body.GenerationConfig.MaxOutputTokens).To(Equal(4096))
		})

		It("honors a custom upstream", func() {
			custom := google.NewWithUpstream("http://127.0.0.1:9999")
			req, err := custom.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(HavePrefix("http://127.0.0.1:9999/v1beta/models/"))
		})
	})

	Describe("ParseResponse", func() {
		It("extracts the first candidate's first part", func() {
			payload := []byte(`{"candidates":[{"content":{"parts":[{"text":"Hi there"}],"role":"model"}}]}`)
			content, err := p.ParseResponse(payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("Hi there"))
		})

		It("returns empty content when candidates are absent", func() {
			content, err := p.ParseResponse([]byte(`{}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal(""))
		})

		It("returns empty content when the candidate has no parts", func() {
			content, err := p.ParseResponse([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal(""))
		})
	})

	Describe("ParseError", func() {
		It("extracts the provider's error message", func() {
			err := p.ParseError(400, []byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
			Expect(err).To(MatchError("API key not valid"))
		})

		It("falls back to the HTTP status for a messageless error body", func() {
			err := p.ParseError(503, []byte(`{}`))
			Expect(err).To(MatchError("HTTP 503"))
		})

		It("reports a generic failure for an unreadable body", func() {
			err := p.ParseError(503, []byte(``))
			Expect(err).To(MatchError("Request failed"))
		})
	})
})
