package openai_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider"
	"github.com/relaychat/relay/pkg/llm/provider/openai"
)

var _ = Describe("OpenAI Provider", func() {
	var p provider.Provider

	config := llm.AIConfig{
		Provider: "openai",
		APIKey:   "sk-0123456789abcdef0123",
		ModelID:  "gpt-4o-mini",
	}

	messages := []llm.ChatMessage{
		{ID: "1", Role: "user", Content: "Hello"},
		{ID: "2", Role: "assistant", Content: "Hi! How can I help?"},
	}

	BeforeEach(func() {
		p = openai.New()
	})

	Describe("Name", func() {
		It("returns 'openai'", func() {
			Expect(p.Name()).To(Equal("openai"))
		})
	})

	Describe("BuildRequest", func() {
		It("targets the chat completions endpoint", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(Equal("https://api.openai.com/v1/chat/completions"))
		})

		It("authenticates with a bearer token only", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Header.Get("Authorization")).To(Equal("Bearer " + config.APIKey))
			Expect(req.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(req.Header.Get("HTTP-Referer")).To(BeEmpty())
		})

		It("prepends the system prompt to the conversation", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())

			var body struct {
				Model    string `json:"model"`
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			Expect(json.Unmarshal(req.Body, &body)).To(Succeed())

			Expect(body.Model).To(Equal("gpt-4o-mini"))
			Expect(body.Messages).To(HaveLen(3))
			Expect(body.Messages[0].Role).To(Equal("system"))
			Expect(body.Messages[0].Content).To(Equal(llm.DefaultSystemPrompt))
			Expect(body.Messages[1].Role).To(Equal("user"))
			Expect(body.Messages[2].Role).To(Equal("assistant"))
		})

		It("honors a custom upstream", func() {
			custom := openai.NewWithUpstream("http://127.0.0.1:9999")
			req, err := custom.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(Equal("http://127.0.0.1:9999/chat/completions"))
		})
	})

	Describe("ParseResponse", func() {
		It("extracts the first choice's content", func() {
			payload := []byte(`{"choices":[{"message":{"role":"assistant","content":"Hi there"}}]}`)
			content, err := p.ParseResponse(payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("Hi there"))
		})

		It("returns empty content when choices are absent", func() {
			content, err := p.ParseResponse([]byte(`{}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal(""))
		})
	})

	Describe("ParseError", func() {
		It("extracts the provider's error message", func() {
			err := p.ParseError(429, []byte(`{"error":{"message":"rate limit exceeded"}}`))
			Expect(err).To(MatchError("rate limit exceeded"))
		})

		It("falls back to the HTTP status for a messageless error body", func() {
			err := p.ParseError(500, []byte(`{}`))
			Expect(err).To(MatchError("HTTP 500"))
		})

		It("reports a generic failure for an unreadable body", func() {
			err := p.ParseError(500, []byte(``))
			Expect(err).To(MatchError("Request failed"))
		})
	})
})
