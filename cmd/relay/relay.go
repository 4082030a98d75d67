// Package relaycmder
package relaycmder

import (
	"github.com/spf13/cobra"

	chatcmder "github.com/relaychat/relay/cmd/relay/chat"
	configcmder "github.com/relaychat/relay/cmd/relay/config"
	servecmder "github.com/relaychat/relay/cmd/relay/serve"
	versioncmder "github.com/relaychat/relay/cmd/relay/version"
)

const relayLongDesc string = `Relay is a backend proxy for AI chat clients.

It validates, sanitizes, and rate-limits chat requests before forwarding
them to an LLM provider (OpenRouter, OpenAI, Anthropic, Google) with the
caller's API key, and normalizes provider responses into a single format.

Run services using:
  relay serve          Run the backend server
  relay chat           Chat with a provider through the backend
  relay config         Manage persistent configuration`

const relayShortDesc string = "Relay - AI chat backend proxy"

func NewRelayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: relayShortDesc,
		Long:  relayLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .relay/ config directory")

	// Add subcommands
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
