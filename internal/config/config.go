// Package config provides a unified configuration system for ruleengine:
// a yaml.v3-tagged struct plus a reflection-based environment-variable
// override loader, the same shape graft's own internal/config package
// uses.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete ruleengine CLI/service configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Provider ProviderConfig `yaml:"provider" json:"provider"`
	CLI      CLIConfig      `yaml:"cli" json:"cli"`
}

// LoggingConfig controls internal/rlog's verbosity.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" json:"level"`
}

// ProviderConfig selects and configures the ServiceProvider backend an
// evaluation run uses (§B.2).
type ProviderConfig struct {
	// Backend is one of "none", "nats", "file", "vault".
	Backend string `yaml:"backend" env:"PROVIDER_BACKEND" json:"backend"`

	NATSURL string `yaml:"nats_url" env:"NATS_URL" json:"nats_url"`

	FixturePath string `yaml:"fixture_path" env:"FIXTURE_PATH" json:"fixture_path"`

	VaultAddr  string `yaml:"vault_addr" env:"VAULT_ADDR" json:"vault_addr"`
	VaultToken string `yaml:"vault_token" env:"VAULT_TOKEN" json:"vault_token"`
}

// CLIConfig holds cmd/ruleengine presentation defaults. cmd/ruleengine
// does not read it: color output there is decided by the --color flag and
// whether stdout is a terminal.
type CLIConfig struct {
	Color bool `yaml:"color" env:"CLI_COLOR" json:"color"`
}

// Default returns the out-of-the-box configuration.
func Default() *Config {
	return &Config{
		Logging:  LoggingConfig{Level: "info"},
		Provider: ProviderConfig{Backend: "none"},
		CLI:      CLIConfig{Color: true},
	}
}

// LoadFile decodes a YAML configuration file on top of Default(), then
// applies environment overrides (§B.4).
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decoding config %s: %w", path, err)
		}
	}

	if err := NewLoader("RULEENGINE_").LoadFromEnvironment(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
