// Package config loads service configuration from the environment. All
// required variables are checked in one pass so an operator sees every
// missing key at once instead of fixing them one restart at a time.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvSupabaseURL    = "SUPABASE_URL"
	EnvSupabaseKey    = "SUPABASE_KEY"
	EnvParseAPIKey    = "REDUCTO_API_KEY"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvSupabaseBucket = "SUPABASE_BUCKET"
	EnvParseEndpoint  = "REDUCTO_PARSE_URL"
	EnvOpenAIHost     = "OPENAI_BASE_URL"
	EnvEmbeddingModel = "EMBEDDING_MODEL"
)

// Optional variable defaults.
const (
	DefaultBucket         = "documents"
	DefaultParseEndpoint  = "https://api.reducto.ai/v1/parse"
	DefaultOpenAIHost     = "https://api.openai.com/v1"
	DefaultEmbeddingModel = "text-embedding-3-large"
)

// Config carries the collaborator settings for the pipeline.
type Config struct {
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
	ParseEndpoint  string
	ParseAPIKey    string
	OpenAIHost     string
	OpenAIKey      string
	EmbeddingModel string
}

// Load reads configuration from the environment. Missing required
// variables are gathered and reported together in a single error.
func Load() (*Config, error) {
	var missing []string
	require := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}
	optional := func(key, fallback string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fallback
	}

	cfg := &Config{
		SupabaseURL:    require(EnvSupabaseURL),
		SupabaseKey:    require(EnvSupabaseKey),
		ParseAPIKey:    require(EnvParseAPIKey),
		OpenAIKey:      require(EnvOpenAIKey),
		SupabaseBucket: optional(EnvSupabaseBucket, DefaultBucket),
		ParseEndpoint:  optional(EnvParseEndpoint, DefaultParseEndpoint),
		OpenAIHost:     optional(EnvOpenAIHost, DefaultOpenAIHost),
		EmbeddingModel: optional(EnvEmbeddingModel, DefaultEmbeddingModel),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}
