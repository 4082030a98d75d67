package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found in the resolved .relay/ directory), and binds environment
// variables with the RELAY_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (bound by the commands that own them)
//  2. Environment variables (RELAY_SERVER_LISTEN, PORT, FRONTEND_URL, ...)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	cfger, err := NewConfiger(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}
	v.AddConfigPath(cfger.dir)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: RELAY_SERVER_LISTEN, RELAY_CLIENT_TARGET, etc.
	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy aliases for deployments configured via PORT/FRONTEND_URL.
	// PORT carries a bare port number; ServerListen() turns it into an addr.
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("server.frontend_url", "RELAY_SERVER_FRONTEND_URL", "FRONTEND_URL")

	return v, nil
}

// ServerListen resolves the listen address from viper, honoring the legacy
// PORT variable when server.listen was not set explicitly.
func ServerListen(v *viper.Viper) string {
	if port := v.GetString("port"); port != "" {
		return ":" + strings.TrimPrefix(port, ":")
	}
	return v.GetString("server.listen")
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Server
	v.SetDefault("server.listen", d.Server.Listen)
	v.SetDefault("server.frontend_url", d.Server.FrontendURL)

	// Client
	v.SetDefault("client.target", d.Client.Target)
	v.SetDefault("client.provider", d.Client.Provider)
	v.SetDefault("client.model", d.Client.Model)
}
