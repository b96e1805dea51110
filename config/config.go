// Package config provides configuration loading for CarMesh deployments.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete CarMesh configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Engine    EngineConfig    `yaml:"engine"`
	Model     ModelConfig     `yaml:"model"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Storage   StorageConfig   `yaml:"storage"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
}

// EngineConfig configures the execution coordinator.
type EngineConfig struct {
	// StepTimeout bounds each agent invocation.
	StepTimeout time.Duration `yaml:"step_timeout"`
}

// ModelConfig configures the summary model. An empty provider disables
// model calls and runs every agent degraded.
type ModelConfig struct {
	// Provider is "openai", "anthropic" or "" (disabled).
	Provider string `yaml:"provider"`
	// Name overrides the provider's default model id.
	Name string `yaml:"name"`
	// Temperature controls randomness (0.0-1.0).
	Temperature float64 `yaml:"temperature"`
}

// KnowledgeConfig configures knowledge retrieval.
type KnowledgeConfig struct {
	// TopK bounds snippets per query.
	TopK int `yaml:"top_k"`
}

// StorageConfig configures the listing store backend.
type StorageConfig struct {
	// Driver is "memory" or "sqlite".
	Driver string `yaml:"driver"`
	// Path is the SQLite database file (sqlite driver only).
	Path string `yaml:"path"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Engine: EngineConfig{StepTimeout: 10 * time.Second},
		Model: ModelConfig{
			Provider:    "",
			Temperature: 0.7,
		},
		Knowledge: KnowledgeConfig{TopK: 3},
		Storage:   StorageConfig{Driver: "memory", Path: "carmesh.db"},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Engine.StepTimeout < 0 {
		return fmt.Errorf("engine.step_timeout must not be negative")
	}
	switch c.Model.Provider {
	case "", "openai", "anthropic":
	default:
		return fmt.Errorf("model.provider must be openai, anthropic or empty, got %q", c.Model.Provider)
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return fmt.Errorf("model.temperature must be between 0 and 1")
	}
	if c.Knowledge.TopK < 0 {
		return fmt.Errorf("knowledge.top_k must not be negative")
	}
	switch c.Storage.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("storage.driver must be memory or sqlite, got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required for the sqlite driver")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// APIKey returns the credential for the configured provider from the
// environment. Empty means no credential is set.
func (c *Config) APIKey() string {
	switch c.Model.Provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	}
	return ""
}
