// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Payments PaymentsConfig `mapstructure:"payments"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points the client at the platform REST API.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// SessionConfig controls where the signed-in session is kept.
// Backend is "memory" or "redis".
type SessionConfig struct {
	Backend string      `mapstructure:"backend"`
	TTL     int         `mapstructure:"ttl"` // seconds
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds settings for the OAuth sign-in providers.
type AuthConfig struct {
	OAuthProviders struct {
		Google struct {
			ClientID     string `mapstructure:"client_id"`
			ClientSecret string `mapstructure:"client_secret"`
			RedirectURL  string `mapstructure:"redirect_uri"`
		} `mapstructure:"google"`
		Facebook struct {
			ClientID     string `mapstructure:"client_id"`
			ClientSecret string `mapstructure:"client_secret"`
			RedirectURL  string `mapstructure:"redirect_uri"`
		} `mapstructure:"facebook"`
		Apple struct {
			ClientID    string `mapstructure:"client_id"`
			TeamID      string `mapstructure:"team_id"`
			RedirectURL string `mapstructure:"redirect_uri"`
		} `mapstructure:"apple"`
	} `mapstructure:"oauth_providers"`
}

// PaymentsConfig holds the hosted-checkout redirect endpoints. The gateway
// itself stays behind the backend; only return URLs live client-side.
type PaymentsConfig struct {
	SuccessURL string `mapstructure:"success_url"`
	CancelURL  string `mapstructure:"cancel_url"`
}

// MetricsConfig controls the local /metrics exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Validate checks critical configuration fields.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Session.Backend != "memory" && c.Session.Backend != "redis" {
		return fmt.Errorf("session.backend must be \"memory\" or \"redis\"")
	}
	if c.Session.Backend == "redis" && c.Session.Redis.Address == "" {
		return fmt.Errorf("session.redis.address is required for the redis backend")
	}
	return nil
}
