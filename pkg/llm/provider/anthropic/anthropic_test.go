package anthropic_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider"
	"github.com/relaychat/relay/pkg/llm/provider/anthropic"
)

var _ = Describe("Anthropic Provider", func() {
	var p provider.Provider

	config := llm.AIConfig{
		Provider: "anthropic",
		APIKey:   "sk-ant-0123456789abcdef",
		ModelID:  "claude-sonnet-4",
	}

	messages := []llm.ChatMessage{
		{ID: "1", Role: "user", Content: "Hello"},
		{ID: "2", Role: "assistant", Content: "Hi! How can I help?"},
		{ID: "3", Role: "user", Content: "What is Go?"},
	}

	BeforeEach(func() {
		p = anthropic.New()
	})

	Describe("Name", func() {
		It("returns 'anthropic'", func() {
			Expect(p.Name()).To(Equal("anthropic"))
		})
	})

	Describe("BuildRequest", func() {
		It("targets the messages endpoint", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(Equal("https://api.anthropic.com/v1/messages"))
		})

		It("authenticates with the x-api-key and version headers", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.Header.Get("x-api-key")).To(Equal(config.APIKey))
			Expect(req.Header.Get("anthropic-version")).To(Equal("2023-06-01"))
			Expect(req.Header.Get("Authorization")).To(BeEmpty())
		})

		It("carries the system prompt in the system field, not as a message", func() {
			req, err := p.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())

			var body struct {
				Model     string `json:"model"`
				MaxTokens int    `json:"max_tokens"`
				System    string `json:"system"`
				Messages  []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			Expect(json.Unmarshal(req.Body, &body)).To(Succeed())

			Expect(body.Model).To(Equal("claude-sonnet-4"))
			Expect(body.MaxTokens).To(Equal(4096))
			Expect(body.System).To(Equal(llm.DefaultSystemPrompt))

			Expect(body.Messages).To(HaveLen(3))
			for _, msg := range body.Messages {
				Expect(msg.Role).To(BeElementOf("user", "assistant"))
			}
			Expect(body.Messages[0].Role).To(Equal("user"))
			Expect(body.Messages[1].Role).To(Equal("assistant"))
			Expect(body.Messages[2].Content).To(Equal("What is Go?"))
		})

		It("maps unrecognized roles to user", func() {
			odd := []llm.ChatMessage{{ID: "1", Role: "system", Content: "be terse"}}
			req, err := p.BuildRequest(odd, config)
			Expect(err).NotTo(HaveOccurred())

			var body struct {
				Messages []struct {
					Role string `json:"role"`
				} `json:"messages"`
			}
			Expect(json.Unmarshal(req.Body, &body)).To(Succeed())
			Expect(body.Messages[0].Role).To(Equal("user"))
		})

		It("honors a custom upstream", func() {
			custom := anthropic.NewWithUpstream("http://127.0.0.1:9999")
			req, err := custom.BuildRequest(messages, config)
			Expect(err).NotTo(HaveOccurred())
			Expect(req.URL).To(Equal("http://127.0.0.1:9999/v1/messages"))
		})
	})

	Describe("ParseResponse", func() {
		It("extracts the first content block's text", func() {
			payload := []byte(`{"content":[{"type":"text","text":"Hi there"}]}`)
			content, err := p.ParseResponse(payload)
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal("Hi there"))
		})

		It("returns empty content when the content array is empty", func() {
			content, err := p.ParseResponse([]byte(`{"content":[]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(content).To(Equal(""))
		})
	})

	Describe("ParseError", func() {
		It("extracts the provider's error message", func() {
			err := p.ParseError(401, []byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
			Expect(err).To(MatchError("invalid x-api-key"))
		})

		It("falls back to the HTTP status for a messageless error body", func() {
			err := p.ParseError(529, []byte(`{}`))
			Expect(err).To(MatchError("HTTP 529"))
		})

		It("reports a generic failure for an unreadable body", func() {
			err := p.ParseError(529, []byte(`overloaded`))
			Expect(err).To(MatchError("Request failed"))
		})
	})
})
