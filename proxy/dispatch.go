package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/relaychat/relay/pkg/llm"
	"github.com/relaychat/relay/pkg/llm/provider"
)

// Dispatcher selects the adapter for a requested provider, invokes it once,
// and normalizes success and failure into a uniform ChatResponse. It never
// returns an error to its caller and never retries: a single failed upstream
// call is a single failed user-visible request.
type Dispatcher struct {
	providers  map[string]provider.Provider
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDispatcher builds a Dispatcher with one adapter per supported provider.
// Entries in upstreams override a provider's default base URL.
func NewDispatcher(upstreams map[string]string, logger *zap.Logger) (*Dispatcher, error) {
	providers := make(map[string]provider.Provider)
	for _, name := range provider.SupportedProviders() {
		prov, err := provider.NewWithUpstream(name, upstreams[name])
		if err != nil {
			return nil, fmt.Errorf("could not create provider %s: %w", name, err)
		}
		providers[name] = prov
	}

	return &Dispatcher{
		providers: providers,
		logger:    logger,
		httpClient: &http.Client{
			// LLM completions can be slow on long conversations
			Timeout: 60 * time.Second,
		},
	}, nil
}

// SendMessage forwards one chat request to its provider and returns the
// normalized result. Every failure path resolves to a response with Error
// set and an empty Content.
func (d *Dispatcher) SendMessage(ctx context.Context, req *llm.ChatRequest) *llm.ChatResponse {
	if req.Config.APIKey == "" {
		return &llm.ChatResponse{Error: "API key is required"}
	}

	prov, ok := d.providers[req.Config.Provider]
	if !ok {
		return &llm.ChatResponse{Error: "Unsupported provider"}
	}

	wire, err := prov.BuildRequest(req.Messages, req.Config)
	if err != nil {
		d.logger.Error("failed to build provider request",
			zap.Error(err),
			zap.String("provider", prov.Name()),
		)
		return apiError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, wire.URL, bytes.NewReader(wire.Body))
	if err != nil {
		d.logger.Error("failed to create upstream request",
			zap.Error(err),
			zap.String("provider", prov.Name()),
		)
		return &llm.ChatResponse{Error: "API Error: could not create upstream request"}
	}
	httpReq.Header = wire.Header

	start := time.Now()
	httpResp, err := d.httpClient.Do(httpReq)
	if err != nil {
		// Transport errors embed the full request URL, which for Google
		// carries the API key in the query string. Keep the client-facing
		// message generic and log only the provider name.
		d.logger.Error("upstream request failed",
			zap.Error(err),
			zap.String("provider", prov.Name()),
		)
		return &llm.ChatResponse{Error: "API Error: upstream request failed"}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		d.logger.Error("failed to read upstream response",
			zap.Error(err),
			zap.String("provider", prov.Name()),
		)
		return &llm.ChatResponse{Error: "API Error: failed to read upstream response"}
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		perr := prov.ParseError(httpResp.StatusCode, body)
		d.logger.Warn("upstream returned error",
			zap.Int("status", httpResp.StatusCode),
			zap.String("provider", prov.Name()),
			zap.String("detail", perr.Error()),
		)

		resp := apiError(perr)
		resp.AuthFailure = httpResp.StatusCode == http.StatusUnauthorized ||
			httpResp.StatusCode == http.StatusForbidden
		return resp
	}

	content, err := prov.ParseResponse(body)
	if err != nil {
		d.logger.Warn("failed to parse upstream response",
			zap.Error(err),
			zap.String("provider", prov.Name()),
		)
		return apiError(err)
	}

	d.logger.Debug("dispatched chat request",
		zap.String("provider", prov.Name()),
		zap.String("model", req.Config.ModelID),
		zap.Int("message_count", len(req.Messages)),
		zap.Duration("duration", time.Since(start)),
	)

	return &llm.ChatResponse{Content: content}
}

// apiError wraps an adapter failure into the uniform error shape.
func apiError(err error) *llm.ChatResponse {
	return &llm.ChatResponse{Error: fmt.Sprintf("API Error: %s", err.Error())}
}
