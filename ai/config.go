package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for the embedding service client.
type Config struct {
	// Host is the base URL for the embedding service API.
	// Example: "https://api.openai.com/v1"
	Host string

	// APIKey authenticates against the embedding service.
	// Use "none" for local OpenAI-compatible services without auth.
	APIKey string

	// Model is the model identifier to use for text embeddings.
	// Example: "text-embedding-3-large"
	Model string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the embedding service API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the embedding model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// DefaultConfig returns a Config with defaults matching the hosted
// OpenAI embedding API.
func DefaultConfig() *Config {
	return &Config{
		Host:   "https://api.openai.com/v1",
		APIKey: "none",
		Model:  "text-embedding-3-large",
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("embedding host is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("embedding model is required")
	}
	return nil
}
