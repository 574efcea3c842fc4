// Package config resolves the immutable runtime configuration for the
// tokengate service. Values come from built-in defaults, an optional TOML
// file, and environment variables, in that order of precedence; command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultPort is used when no listen port is configured.
	DefaultPort = 3000
	// DefaultToken is the placeholder secret; deployments are expected to
	// override it via TOKEN, TOKEN_HASH, or the config file.
	DefaultToken = "mysecrettoken"
)

// Config holds every value the process reads at startup. It is resolved once
// and never mutated afterwards; request handling only ever reads it.
type Config struct {
	Port      int    `toml:"port"`
	Token     string `toml:"token"`
	TokenHash string `toml:"token_hash"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	TLSCert   string `toml:"tls_cert"`
	TLSKey    string `toml:"tls_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:  DefaultPort,
		Token: DefaultToken,
	}
}

// Load resolves the configuration from defaults, the TOML file at path when
// one is provided, and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if raw, ok := os.LookupEnv("PORT"); ok {
		if port, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			c.Port = port
		}
	}
	if token := strings.TrimSpace(os.Getenv("TOKEN")); token != "" {
		c.Token = token
	}
	if hash := strings.TrimSpace(os.Getenv("TOKEN_HASH")); hash != "" {
		c.TokenHash = hash
	}
	if level := strings.TrimSpace(os.Getenv("TOKENGATE_LOG_LEVEL")); level != "" {
		c.LogLevel = level
	}
	if format := strings.TrimSpace(os.Getenv("TOKENGATE_LOG_FORMAT")); format != "" {
		c.LogFormat = format
	}
	if cert := strings.TrimSpace(os.Getenv("TOKENGATE_TLS_CERT")); cert != "" {
		c.TLSCert = cert
	}
	if key := strings.TrimSpace(os.Getenv("TOKENGATE_TLS_KEY")); key != "" {
		c.TLSKey = key
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.Token) == "" && strings.TrimSpace(c.TokenHash) == "" {
		return errors.New("either token or token_hash must be set")
	}
	if (strings.TrimSpace(c.TLSCert) == "") != (strings.TrimSpace(c.TLSKey) == "") {
		return errors.New("tls_cert and tls_key must be provided together")
	}
	return nil
}

// Addr renders the listen address for the configured port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
