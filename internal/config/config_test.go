package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Set required environment variables
	os.Setenv("SPOTIFY_CLIENT_ID", "test-client-id")
	os.Setenv("SPOTIFY_CLIENT_SECRET", "test-client-secret")
	defer func() {
		os.Unsetenv("SPOTIFY_CLIENT_ID")
		os.Unsetenv("SPOTIFY_CLIENT_SECRET")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)      // default value
	assert.Equal(t, "debug", cfg.GinMode)  // default value
	assert.Equal(t, "test-client-id", cfg.SpotifyClientID)
	assert.Equal(t, "test-client-secret", cfg.SpotifyClientSecret)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AnalysisModel)
	assert.Equal(t, "gpt-4o", cfg.EnrichmentModel)
	assert.Equal(t, "gpt-4o", cfg.RecommendationModel)
	assert.Equal(t, 10*time.Second, cfg.CatalogTimeoutDuration())
	assert.Equal(t, 15*time.Second, cfg.LyricsTimeoutDuration())
	assert.Equal(t, 60*time.Second, cfg.LLMTimeoutDuration())
	assert.Equal(t, 4, cfg.EnrichConcurrency)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("SPOTIFY_CLIENT_ID")
	os.Unsetenv("SPOTIFY_CLIENT_SECRET")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidConcurrency(t *testing.T) {
	os.Setenv("SPOTIFY_CLIENT_ID", "test-client-id")
	os.Setenv("SPOTIFY_CLIENT_SECRET", "test-client-secret")
	os.Setenv("ENRICH_CONCURRENCY", "0")
	defer func() {
		os.Unsetenv("SPOTIFY_CLIENT_ID")
		os.Unsetenv("SPOTIFY_CLIENT_SECRET")
		os.Unsetenv("ENRICH_CONCURRENCY")
	}()

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ENRICH_CONCURRENCY")
}

func TestLLMEnabled(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.LLMEnabled())

	cfg.OpenAIAPIKey = "sk-test"
	assert.True(t, cfg.LLMEnabled())
}
