package proxy

import (
	"time"

	"github.com/relaychat/relay/proxy/gate"
)

// Config is the proxy server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":3001")
	ListenAddr string

	// FrontendURL is the single origin allowed by CORS
	// (e.g., "http://localhost:5173").
	FrontendURL string

	// ProviderUpstreams optionally overrides the base URL per provider name.
	// Unset providers use their default public endpoints. Tests point these
	// at mock upstreams.
	ProviderUpstreams map[string]string

	// Clock drives the gate's window bookkeeping. Nil means wall-clock time.
	Clock gate.Clock
}

// Gate policy constants. All windows are fixed, per client IP, and reset on
// process restart.
const (
	maxPayloadBytes = 10 * 1024 * 1024

	generalLimitMax    = 100
	generalLimitWindow = 15 * time.Minute

	chatLimitMax    = 30
	chatLimitWindow = time.Minute

	bruteForceMax    = 5
	bruteForceWindow = 15 * time.Minute
)
