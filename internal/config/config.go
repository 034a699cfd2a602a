// Package config loads agent configuration from environment variables.
package config

import (
	"github.com/caarlos0/env/v11"
)

// Config aggregates all configuration sections. Fields are populated from
// environment variables; nested structs use envPrefix so their fields parse
// with the given prefix.
type Config struct {
	Env string `env:"ENV" envDefault:"prod"`

	// JWTSecretKey signs and verifies bearer tokens on the REST surface.
	JWTSecretKey string `env:"JWT_SECRET_KEY"`

	// APIKey, when set, is accepted by the REST surface with full access.
	APIKey string `env:"AGENT_API_KEY"`

	HTTP HTTP `envPrefix:"HTTP_"`
	Log  Log  `envPrefix:"LOG_"`
	MCP  MCP  `envPrefix:"MCP_"`
	Meta Meta `envPrefix:"META_"`
}

// HTTP configures the REST mirror surface.
type HTTP struct {
	Enabled   bool   `env:"ENABLED" envDefault:"true"`
	Address   string `env:"ADDRESS" envDefault:":8080"`
	BodyLimit int64  `env:"BODY_LIMIT" envDefault:"1048576"`
}

// Log configures the structured logger.
type Log struct {
	Level string `env:"LEVEL" envDefault:"info"`
}

// MCP configures the tool-protocol transport. An empty transport disables
// the MCP surface.
type MCP struct {
	Transport string `env:"TRANSPORT" envDefault:"stdio"`
}

// Meta holds the Marketing API credentials captured once at startup.
type Meta struct {
	AccessToken string `env:"ACCESS_TOKEN"`
	AccountID   string `env:"ACCOUNT_ID"`
	// BaseURL overrides the Graph API host, for tests and proxies.
	BaseURL string `env:"BASE_URL"`
}

// Load reads configuration from environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
