package config

const (
	defaultListen      = ":3001"
	defaultFrontendURL = "http://localhost:5173"

	defaultClientTarget   = "http://localhost:3001"
	defaultClientProvider = "openrouter"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			Listen:      defaultListen,
			FrontendURL: defaultFrontendURL,
		},
		Client: ClientConfig{
			Target:   defaultClientTarget,
			Provider: defaultClientProvider,
		},
	}
}
