// ABOUTME: Configuration loading and parsing for gantry-mcp
// ABOUTME: Supports YAML files with environment variable expansion and env overrides

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Environment variables consumed by the core. Read once at startup, never
// re-read mid-request.
const (
	EnvPlatformURL       = "GANTRY_API_URL"
	EnvIdentitySecretKey = "GANTRY_IDENTITY_SECRET_KEY"
	EnvIdentityVerifyURL = "GANTRY_IDENTITY_VERIFY_URL"
	EnvDocsURL           = "GANTRY_DOCS_URL"
	EnvDocsAPIKey        = "GANTRY_DOCS_API_KEY"
)

// Defaults applied when neither config file nor environment provide a value.
const (
	DefaultHTTPAddr    = ":8034"
	DefaultPlatformURL = "https://api.gantry.dev"
	DefaultDocsURL     = "https://docs.gantry.dev/api/search"
)

// Config represents the complete gantry-mcp configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Platform PlatformConfig `yaml:"platform"`
	Identity IdentityConfig `yaml:"identity"`
	Docs     DocsConfig     `yaml:"docs"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds server address configuration.
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr"`
}

// PlatformConfig holds the automation platform API configuration.
type PlatformConfig struct {
	BaseURL string `yaml:"base_url"`
}

// IdentityConfig holds the identity provider verification configuration.
// The secret key authenticates this server to the provider; without it the
// structured-token path rejects all identity tokens.
type IdentityConfig struct {
	VerifyURL string `yaml:"verify_url"`
	SecretKey string `yaml:"secret_key"`
}

// DocsConfig holds the documentation search backend configuration.
type DocsConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{HTTPAddr: DefaultHTTPAddr},
		Platform: PlatformConfig{BaseURL: DefaultPlatformURL},
		Docs:     DocsConfig{BaseURL: DefaultDocsURL},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. A missing file is not an error: defaults plus environment
// overrides produce a runnable configuration. Environment variables in the
// format ${VAR_NAME} are expanded inside the YAML content.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to env overrides.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// applyEnv lets environment variables override file values. The platform
// base URL override and the identity secret are the two the core consumes.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPlatformURL); v != "" {
		c.Platform.BaseURL = v
	}
	if v := os.Getenv(EnvIdentitySecretKey); v != "" {
		c.Identity.SecretKey = v
	}
	if v := os.Getenv(EnvIdentityVerifyURL); v != "" {
		c.Identity.VerifyURL = v
	}
	if v := os.Getenv(EnvDocsURL); v != "" {
		c.Docs.BaseURL = v
	}
	if v := os.Getenv(EnvDocsAPIKey); v != "" {
		c.Docs.APIKey = v
	}
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	if c.Platform.BaseURL == "" {
		return fmt.Errorf("platform.base_url is required")
	}
	// Identity verification is optional: without a secret the server still
	// serves API-key callers; identity tokens are rejected at the gate.
	if c.Identity.SecretKey != "" && c.Identity.VerifyURL == "" {
		return fmt.Errorf("identity.verify_url is required when identity.secret_key is set")
	}
	return nil
}
