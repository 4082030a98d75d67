// Package servecmder provides the serve command for running the backend server.
package servecmder

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/relaychat/relay/pkg/config"
	"github.com/relaychat/relay/pkg/logger"
	"github.com/relaychat/relay/proxy"
)

type serveCommander struct {
	listen      string
	frontendURL string
	debug       bool

	logger *zap.Logger
}

const serveLongDesc string = `Run the relay backend server.

The server accepts chat requests from the configured frontend origin,
applies payload-size, rate-limit, and brute-force policies, then forwards
each conversation to the caller's chosen LLM provider with the caller's
API key. Provider responses are normalized into {content} / {error}.

Environment variables PORT and FRONTEND_URL are honored when the
corresponding flags are not set.

Examples:
  relay serve
  relay serve --listen :3001 --frontend-url http://localhost:5173`

const serveShortDesc string = "Run the relay backend server"

func NewServeCmd() *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			v, err := config.InitViper(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			if !cmd.Flags().Changed("listen") {
				cmder.listen = config.ServerListen(v)
			}
			if !cmd.Flags().Changed("frontend-url") {
				cmder.frontendURL = v.GetString("server.frontend_url")
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
	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", defaults.Server.Listen, "Address for the server to listen on")
	cmd.Flags().StringVarP(&cmder.frontendURL, "frontend-url", "f", defaults.Server.FrontendURL, "Frontend origin allowed by CORS")

	return cmd
}

func (c *serveCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	p, err := proxy.New(proxy.Config{
		ListenAddr:  c.listen,
		FrontendURL: c.frontendURL,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		c.logger.Info("shutting down", zap.String("signal", sig.String()))
		if err := p.Close(); err != nil {
			c.logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	if err := p.Run(); err != nil {
		return fmt.Errorf("running server: %w", err)
	}

	return nil
}
