package llm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/relaychat/relay/pkg/llm"
)

var _ = Describe("InjectSystemPrompt", func() {
	It("puts the system prompt first", func() {
		out := llm.InjectSystemPrompt([]llm.ChatMessage{
			{ID: "1", Role: llm.RoleUser, Content: "Hello"},
		}, "be helpful")

		Expect(out).To(HaveLen(2))
		Expect(out[0]).To(Equal(llm.PromptMessage{Role: llm.RoleSystem, Content: "be helpful"}))
	})

	It("preserves conversation order", func() {
		out := llm.InjectSystemPrompt([]llm.ChatMessage{
			{ID: "1", Role: llm.RoleUser, Content: "first"},
			{ID: "2", Role: llm.RoleAssistant, Content: "second"},
			{ID: "3", Role: llm.RoleUser, Content: "third"},
		}, "prompt")

		Expect(out[1].Content).To(Equal("first"))
		Expect(out[2].Content).To(Equal("second"))
		Expect(out[3].Content).To(Equal("third"))
	})

	It("keeps the assistant role and maps everything else to user", func() {
		out := llm.InjectSystemPrompt([]llm.ChatMessage{
			{ID: "1", Role: llm.RoleAssistant, Content: "a"},
			{ID: "2", Role: llm.RoleUser, Content: "b"},
			{ID: "3", Role: "tool", Content: "c"},
		}, "prompt")

		Expect(out[1].Role).To(Equal(llm.RoleAssistant))
		Expect(out[2].Role).To(Equal(llm.RoleUser))
		Expect(out[3].Role).To(Equal(llm.RoleUser))
	})

	It("yields only the system prompt for an empty conversation", func() {
		out := llm.InjectSystemPrompt(nil, "prompt")
		Expect(out).To(HaveLen(1))
		Expect(out[0].Role).To(Equal(llm.RoleSystem))
	})
})
