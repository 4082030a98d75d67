package openrouter_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider"
	"github.com/relaychat/relay/pkg/llm/provider/openrouter"
)

var _ = Describe("OpenRouter Provider", func() {
	var p provider.Provider

	config := llm.AIConfig{
		Provider: "openrouter",
		APIKey:   "sk-or-v1-0123456789abcdef0123",
		ModelID:  "openrouter/auto",
	}

	messages := []llm.ChatMessage{
		{ID: "1", Role: "user", Content: "Hello"},
		{ID: "2", Role: "assistant", Content: "Hi! How can I help?"},
		{ID: "3", Role: "user", Content: "What is Go?"},
	}

	BeforeEach(func() {
		p = openrouter.New()
	})

	Describe("Name", func() {
		It("returns 'openrouter'", func() {
			Expect(p.Name()).To(Equal("openrouter"))
		})
	})

	Describe("BuildRequest", func() {
		It("targets the chat completions endpoint", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(Equal("https://openrouter.ai/api/v1/chat/completions"))
		})

		It("authenticates with a bearer token and app headers", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Header.Get("Authorization")).To(Equal("Bearer " + config.APIKey))
			Expect(req.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(req.Header.Get("HTTP-Referer")).To(Equal("https://ai-chat.app"))
			Expect(req.Header.Get("X-Title")).To(Equal("AI Chat"))
		})

		It("puts the system prompt first and preserves message order", func() {
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

			Expect(body.Model).To(Equal("openrouter/auto"))
			Expect(body.Messages).To(HaveLen(4))
			Expect(body.Messages[0].Role).To(Equal("system"))
			Expect(body.Messages[0].Content).To(Equal(llm.DefaultSystemPrompt))
			Expect(body.Messages[1].Role).To(Equal("user"))
			Expect(body.Messages[1].Content).To(Equal("Hello"))
			Expect(body.Messages[2].Role).To(Equal("assistant"))
			Expect(body.Messages[3].Role).To(Equal("user"))
		})

		It("honors a custom upstream", func() {
			custom := openrouter.NewWithUpstream("http://127.0.0.1:9999")
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
			content, err := p.ParseResponse([]byte(`{"choices":[]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal(""))
		})

		It("fails on invalid JSON", func() {
			_, err := p.ParseResponse([]byte(`not json`))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ParseError", func() {
		It("extracts the provider's error message", func() {
			err := p.ParseError(401, []byte(`{"error":{"message":"invalid key"}}`))
			Expect(err).To(MatchError("invalid key"))
		})

		It("falls back to the HTTP status for a messageless error body", func() {
			err := p.ParseError(502, []byte(`{}`))
			Expect(err).To(MatchError("HTTP 502"))
		})

		It("reports a generic failure for an unreadable body", func() {
			err := p.ParseError(502, []byte(`<html>bad gateway</html>`))
			Expect(err).To(MatchError("Request failed"))
		})
	})
})
