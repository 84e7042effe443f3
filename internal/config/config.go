// Package config loads server settings from the environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadConfigFrom
const (
	EnvAPIKey     = "RIOT_API_KEY"
	EnvConfigFile = "LOL_MCP_CONFIG"
	EnvHTTPAddr   = "LOL_MCP_HTTP_ADDR"
	EnvMCPPath    = "LOL_MCP_PATH"
	EnvTransport  = "LOL_MCP_TRANSPORT"
	EnvTimeout    = "RIOT_API_TIMEOUT"
	EnvUserAgent  = "RIOT_API_USER_AGENT"
	EnvLogLevel   = "LOG_LEVEL"
)

// Transports
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Defaults
const (
	DefaultHTTPAddr  = "0.0.0.0:8080"
	DefaultMCPPath   = "/mcp"
	DefaultUserAgent = "lol-mcp-server/1.0"
)

// ErrMissingAPIKey is returned when RIOT_API_KEY is unset or blank
var ErrMissingAPIKey = errors.New(EnvAPIKey + " is not set")

// Config holds server settings
type Config struct {
	// APIKey authenticates against the Riot API. Only ever read from the environment.
	APIKey string

	// HTTPAddr is the listen address for the HTTP transport
	HTTPAddr string

	// MCPPath is the HTTP path serving the MCP endpoint
	MCPPath string

	// Transport is "http" or "stdio"
	Transport string

	// Timeout for Riot API requests; zero means none
	Timeout time.Duration

	// UserAgent identifies the server to the Riot API
	UserAgent string

	// LogLevel is one of debug, info, warn, error
	LogLevel string
}

// fileConfig mirrors the YAML file layout
type fileConfig struct {
	HTTPAddr  string `yaml:"http_addr"`
	MCPPath   string `yaml:"mcp_path"`
	Transport string `yaml:"transport"`
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
	LogLevel  string `yaml:"log_level"`
}

// LoadConfigFrom loads configuration through getenv, reading the YAML file
// named by LOL_MCP_CONFIG first when it is set.
func LoadConfigFrom(getenv func(string) string) (*Config, error) {
	return Load(getenv(EnvConfigFile), getenv)
}

// Load builds a Config from defaults, then the YAML file at path (if non-empty),
// then environment variables looked up through getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{
		HTTPAddr:  DefaultHTTPAddr,
		MCPPath:   DefaultMCPPath,
		Transport: TransportHTTP,
		UserAgent: DefaultUserAgent,
		LogLevel:  "info",
	}

	if path != "" {
		if err := cfg.applyFile(path, getenv); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string, getenv func(string) string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.Expand(string(data), getenv)

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setIfNotEmpty(&c.HTTPAddr, fc.HTTPAddr)
	setIfNotEmpty(&c.MCPPath, fc.MCPPath)
	setIfNotEmpty(&c.Transport, fc.Transport)
	setIfNotEmpty(&c.UserAgent, fc.UserAgent)
	setIfNotEmpty(&c.LogLevel, fc.LogLevel)

	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q in %s: %w", fc.Timeout, path, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	c.APIKey = strings.TrimSpace(getenv(EnvAPIKey))

	setIfNotEmpty(&c.HTTPAddr, getenv(EnvHTTPAddr))
	setIfNotEmpty(&c.MCPPath, getenv(EnvMCPPath))
	setIfNotEmpty(&c.Transport, getenv(EnvTransport))
	setIfNotEmpty(&c.UserAgent, getenv(EnvUserAgent))
	setIfNotEmpty(&c.LogLevel, getenv(EnvLogLevel))

	if t := getenv(EnvTimeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, t, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Transport {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("unknown transport %q: must be %q or %q", c.Transport, TransportHTTP, TransportStdio)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if !strings.HasPrefix(c.MCPPath, "/") {
		return fmt.Errorf("MCP path %q must start with /", c.MCPPath)
	}
	return nil
}

// SlogLevel returns the configured log level, falling back to info
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
