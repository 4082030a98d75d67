package config

// Config represents the persistent relay configuration stored as config.toml
// in the .relay/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Server  ServerConfig `toml:"server"`
	Client  ClientConfig `toml:"client"`
}

// ServerConfig holds backend server settings.
type ServerConfig struct {
	Listen      string `toml:"listen,omitempty"`
	FrontendURL string `toml:"frontend_url,omitempty"`
}

// ClientConfig holds settings for CLI commands that connect to the running
// backend (e.g. relay chat). Target is a full URL (scheme + host + port).
type ClientConfig struct {
	Target   string `toml:"target,omitempty"`
	Provider string `toml:"provider,omitempty"`
	Model    string `toml:"model,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.listen": {
		get: func(c *Config) string { return c.Server.Listen },
		set: func(c *Config, v string) error { c.Server.Listen = v; return nil },
	},
	"server.frontend_url": {
		get: func(c *Config) string { return c.Server.FrontendURL },
		set: func(c *Config, v string) error { c.Server.FrontendURL = v; return nil },
	},
	"client.target": {
		get: func(c *Config) string { return c.Client.Target },
		set: func(c *Config, v string) error { c.Client.Target = v; return nil },
	},
	"client.provider": {
		get: func(c *Config) string { return c.Client.Provider },
		set: func(c *Config, v string) error { c.Client.Provider = v; return nil },
	},
	"client.model": {
		get: func(c *Config) string { return c.Client.Model },
		set: func(c *Config, v string) error { c.Client.Model = v; return nil },
	},
}
