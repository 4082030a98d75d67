// Package chatcmder provides the chat command for interactive LLM chat
// through the relay backend.
package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relaychat/relay/pkg/client"
	"github.com/relaychat/relay/pkg/cliui"
	"github.com/relaychat/relay/pkg/config"
	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/logger"
	"github.com/relaychat/relay/pkg/utils"
)

// apiKeyEnv is the environment variable consulted when --api-key is not set.
const apiKeyEnv = "RELAY_API_KEY"

type chatCommander struct {
	target       string
	providerType string
	model        string
	apiKey       string
	debug        bool

	logger *zap.Logger
}

const chatLongDesc string = `Start an interactive chat session through the relay backend.

Messages are sent to the backend's /api/chat/message endpoint, which
forwards them to the chosen provider with your API key. The API key is
read from --api-key or the RELAY_API_KEY environment variable and is
never written to disk.

Examples:
  relay chat --provider openrouter --model openrouter/auto
  relay chat --provider anthropic --model claude-sonnet-4-5 --target http://localhost:3001`

const chatShortDesc string = "Interactive LLM chat through the relay backend"

func NewChatCmd() *cobra.Command {
	cmder := &chatCommander{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("target") {
				cmder.target = cfg.Client.Target
			}
			if !cmd.Flags().Changed("provider") {
				cmder.providerType = cfg.Client.Provider
			}
			if !cmd.Flags().Changed("model") && cfg.Client.Model != "" {
				cmder.model = cfg.Client.Model
			}

			if cmder.apiKey == "" {
				cmder.apiKey = os.Getenv(apiKeyEnv)
			}
			if cmder.apiKey == "" {
				return errors.New("no API key: set --api-key or " + apiKeyEnv)
			}
			if cmder.model == "" {
				return errors.New("no model: set --model or \"relay config set client.model <model>\"")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}

			return cmder.run()
		},
	}

	defaults := config.NewDefaultConfig()
	cmd.Flags().StringVarP(&cmder.target, "target", "t", defaults.Client.Target, "Relay backend URL")
	cmd.Flags().StringVarP(&cmder.providerType, "provider", "p", defaults.Client.Provider, "LLM provider (openrouter, openai, anthropic, google)")
	cmd.Flags().StringVarP(&cmder.model, "model", "m", "", "Model ID (provider-specific)")
	cmd.Flags().StringVarP(&cmder.apiKey, "api-key", "k", "", "Provider API key (default: "+apiKeyEnv+" env var)")

	return cmd
}

func (c *chatCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cl := client.New(c.target)
	cfg := llm.AIConfig{
		Provider: c.providerType,
		APIKey:   c.apiKey,
		ModelID:  c.model,
	}

	fmt.Println()
	fmt.Printf("  %s %s %s %s\n",
		cliui.KeyStyle.Render("Provider:"),
		cliui.ValueStyle.Render(c.providerType),
		cliui.KeyStyle.Render("Model:"),
		cliui.ValueStyle.Render(c.model),
	)
	fmt.Printf("  %s\n\n", cliui.DimStyle.Render("Type your message and press Enter. /exit or Ctrl+D to quit."))

	var messages []llm.ChatMessage
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(cliui.UserPrompt)
		if !scanner.Scan() {
			// EOF or error
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/exit" {
			break
		}

		messages = append(messages, newMessage(llm.RoleUser, input))
		c.logger.Debug("sending message",
			zap.String("preview", utils.Truncate(input, 60)),
			zap.Int("history", len(messages)),
		)

		content, err := c.send(cl, messages, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s %v\n", cliui.FailMark, err)
			// Remove the failed user message so we can retry
			messages = messages[:len(messages)-1]
			continue
		}

		messages = append(messages, newMessage(llm.RoleAssistant, content))

		fmt.Print(cliui.AssistantPrompt)
		rendered, err := cliui.RenderMarkdown(content)
		if err != nil {
			rendered = content
		}
		fmt.Println(rendered)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	fmt.Println()
	return nil
}

// send posts the conversation to the backend, showing a spinner while the
// provider thinks.
func (c *chatCommander) send(cl *client.Client, messages []llm.ChatMessage, cfg llm.AIConfig) (string, error) {
	var resp *llm.ChatResponse

	err := cliui.Step(os.Stdout, "waiting for "+c.providerType, func() error {
		resp = cl.SendMessage(context.Background(), messages, cfg)
		if resp.Error != "" {
			return errors.New(resp.Error)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	c.logger.Debug("received response",
		zap.String("provider", c.providerType),
		zap.Int("length", len(resp.Content)),
	)

	return resp.Content, nil
}

// newMessage builds an immutable chat message with a fresh ID and an
// ISO-8601 timestamp.
func newMessage(role, content string) llm.ChatMessage {
	return llm.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
