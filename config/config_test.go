package config_test

import (
	"testing"

	"github.com/atriumdata/docpipe/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvSupabaseURL, "https://project.supabase.co")
	t.Setenv(config.EnvSupabaseKey, "service-role-key")
	t.Setenv(config.EnvParseAPIKey, "parse-key")
	t.Setenv(config.EnvOpenAIKey, "sk-test")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv(config.EnvSupabaseBucket, "")
	t.Setenv(config.EnvParseEndpoint, "")
	t.Setenv(config.EnvOpenAIHost, "")
	t.Setenv(config.EnvEmbeddingModel, "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "https://project.supabase.co", cfg.SupabaseURL)
	assert.Equal(t, config.DefaultBucket, cfg.SupabaseBucket)
	assert.Equal(t, config.DefaultParseEndpoint, cfg.ParseEndpoint)
	assert.Equal(t, config.DefaultOpenAIHost, cfg.OpenAIHost)
	assert.Equal(t, config.DefaultEmbeddingModel, cfg.EmbeddingModel)
}

func TestLoadHonorsOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv(config.EnvSupabaseBucket, "underwriting")
	t.Setenv(config.EnvParseEndpoint, "https://parse.internal/v1/parse")
	t.Setenv(config.EnvOpenAIHost, "http://localhost:11434/v1")
	t.Setenv(config.EnvEmbeddingModel, "nomic-embed-text")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "underwriting", cfg.SupabaseBucket)
	assert.Equal(t, "https://parse.internal/v1/parse", cfg.ParseEndpoint)
	assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAIHost)
	assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
}

func TestLoadReportsAllMissingVariables(t *testing.T) {
	t.Setenv(config.EnvSupabaseURL, "")
	t.Setenv(config.EnvSupabaseKey, "")
	t.Setenv(config.EnvParseAPIKey, "parse-key")
	t.Setenv(config.EnvOpenAIKey, "")

	_, err := config.Load()
	require.Error(t, err)

	assert.Contains(t, err.Error(), config.EnvSupabaseURL)
	assert.Contains(t, err.Error(), config.EnvSupabaseKey)
	assert.Contains(t, err.Error(), config.EnvOpenAIKey)
	assert.NotContains(t, err.Error(), config.EnvParseAPIKey)
}
