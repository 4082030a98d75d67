// Package proxy provides the AI chat backend: a thin HTTP proxy that
// validates, sanitizes, and rate-limits inbound chat requests before
// dispatching them to the caller's chosen LLM provider.
package proxy

import (
	"errors"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/security"
	"github.com/relaychat/relay/proxy/gate"
)

// ServiceName identifies the backend in the health payload.
const ServiceName = "relay-backend"

// Proxy is the chat backend server. The only shared mutable state across
// requests is the gate's in-memory counters; each chat request is otherwise
// processed statelessly.
type Proxy struct {
	config     Config
	logger     *zap.Logger
	dispatcher *Dispatcher
	server     *fiber.App

	generalLimiter *gate.Limiter
	chatLimiter    *gate.Limiter
	bruteForce     *gate.BruteForce
}

// New creates a new Proxy.
func New(config Config, logger *zap.Logger) (*Proxy, error) {
	dispatcher, err := NewDispatcher(config.ProviderUpstreams, logger)
	if err != nil {
		return nil, err
	}

	clock := config.Clock
	if clock == nil {
		clock = gate.SystemClock()
	}

	p := &Proxy{
		config:         config,
		logger:         logger,
		dispatcher:     dispatcher,
		generalLimiter: gate.NewLimiter(generalLimitMax, generalLimitWindow, clock),
		chatLimiter:    gate.NewLimiter(chatLimitMax, chatLimitWindow, clock),
		bruteForce:     gate.NewBruteForce(bruteForceMax, bruteForceWindow, clock),
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		BodyLimit:             maxPayloadBytes,
		ErrorHandler:          p.handleError,
	})

	app.Use(recover.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.FrontendURL,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, Authorization",
	}))
	app.Use(p.checkPayloadSize)

	app.Get("/health", p.handleHealth)

	api := app.Group("/api", p.limitGeneral)
	api.Post("/chat/message", p.limitChat, p.guardBruteForce, p.handleChatMessage)

	// Unmatched routes
	app.Use(p.handleNotFound)

	p.server = app

	return p, nil
}

// Run starts the proxy server on the configured listening address.
func (p *Proxy) Run() error {
	p.logger.Info("starting chat backend",
		zap.String("listen", p.config.ListenAddr),
		zap.String("frontend", p.config.FrontendURL),
	)

	return p.server.Listen(p.config.ListenAddr)
}

// RunWithListener starts the proxy server using the provided listener.
func (p *Proxy) RunWithListener(listener net.Listener) error {
	p.logger.Info("starting chat backend",
		zap.String("listen", listener.Addr().String()),
		zap.String("frontend", p.config.FrontendURL),
	)

	return p.server.Listener(listener)
}

// Close gracefully shuts down the proxy.
func (p *Proxy) Close() error {
	return p.server.Shutdown()
}

// clientIP resolves the caller's address for gate bookkeeping.
func (p *Proxy) clientIP(c *fiber.Ctx) string {
	return gate.ClientIP(c.Get(fiber.HeaderXForwardedFor), c.Get("X-Real-IP"), c.IP())
}

// checkPayloadSize rejects oversized requests on the declared content length,
// before any body parsing.
func (p *Proxy) checkPayloadSize(c *fiber.Ctx) error {
	if c.Request().Header.ContentLength() > maxPayloadBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(llm.ErrorResponse{
			Error: "Request too large",
		})
	}
	return c.Next()
}

// limitGeneral applies the general per-IP rate limit to all /api routes.
func (p *Proxy) limitGeneral(c *fiber.Ctx) error {
	if !p.generalLimiter.Allow(p.clientIP(c)) {
		return c.Status(fiber.StatusTooManyRequests).JSON(llm.ErrorResponse{
			Error:   "Too many requests",
			Message: "Please try again later.",
		})
	}
	return c.Next()
}

// limitChat applies the tighter chat-specific rate limit.
func (p *Proxy) limitChat(c *fiber.Ctx) error {
	if !p.chatLimiter.Allow(p.clientIP(c)) {
		return c.Status(fiber.StatusTooManyRequests).JSON(llm.ErrorResponse{
			Error:   "Too many chat requests",
			Message: "Please slow down.",
		})
	}
	return c.Next()
}

// guardBruteForce rejects every request from an IP that has reached the
// failed-attempt cap, regardless of content, until its window expires.
func (p *Proxy) guardBruteForce(c *fiber.Ctx) error {
	if p.bruteForce.IsBlocked(p.clientIP(c)) {
		return c.Status(fiber.StatusTooManyRequests).JSON(llm.ErrorResponse{
			Error:   "Too many failed attempts",
			Message: "Your IP has been temporarily blocked. Please try again later.",
		})
	}
	return c.Next()
}

// handleChatMessage is the main chat endpoint: sanitize, validate, dispatch.
func (p *Proxy) handleChatMessage(c *fiber.Ctx) error {
	ip := p.clientIP(c)

	var req llm.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	req.Messages = security.SanitizeMessages(req.Messages)

	if errs := security.ValidateChatRequest(&req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	// Syntactic key check only; a revoked key still passes here and fails
	// at dispatch with a provider error.
	if !security.ValidateAPIKey(req.Config.APIKey) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": []security.FieldError{
				{Field: "config.apiKey", Message: "Invalid API key format"},
			},
		})
	}

	resp := p.dispatcher.SendMessage(c.Context(), &req)
	if resp.Error != "" {
		if resp.AuthFailure {
			p.bruteForce.RecordFailure(ip)
		}
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: resp.Error})
	}

	// A successful provider-authenticated call reopens the gate for this IP.
	p.bruteForce.Clear(ip)

	return c.JSON(fiber.Map{"content": resp.Content})
}

// handleHealth reports service liveness.
func (p *Proxy) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}

// handleNotFound answers unmatched routes.
func (p *Proxy) handleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "Not found"})
}

// handleError maps unhandled errors to JSON without leaking internals.
func (p *Proxy) handleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusRequestEntityTooLarge {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(llm.ErrorResponse{
			Error: "Request too large",
		})
	}

	p.logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(llm.ErrorResponse{
		Error: "Internal server error",
	})
}
