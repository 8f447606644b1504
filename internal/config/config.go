package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// Spotify catalog credentials (client-credentials flow)
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID" required:"true"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET" required:"true"`

	// Lyrics providers. Genius needs a token; LyricsOVH is keyless and used
	// as a fallback when Genius is unconfigured or misses.
	GeniusAccessToken string `envconfig:"GENIUS_ACCESS_TOKEN"`

	// OpenAI settings. Missing key degrades all LLM stages to "always absent".
	OpenAIAPIKey        string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL       string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	AnalysisModel       string `envconfig:"ANALYSIS_MODEL" default:"gpt-3.5-turbo"`
	EnrichmentModel     string `envconfig:"ENRICHMENT_MODEL" default:"gpt-4o"`
	RecommendationModel string `envconfig:"RECOMMENDATION_MODEL" default:"gpt-4o"`

	// Optional Valkey cache. Empty URL falls back to the in-memory cache.
	ValkeyURL string `envconfig:"VALKEY_URL"`

	// Timeouts for external collaborator calls, in seconds
	CatalogTimeout int `envconfig:"CATALOG_TIMEOUT" default:"10"`
	LyricsTimeout  int `envconfig:"LYRICS_TIMEOUT" default:"15"`
	LLMTimeout     int `envconfig:"LLM_TIMEOUT" default:"60"`

	// Number of songs enriched concurrently
	EnrichConcurrency int `envconfig:"ENRICH_CONCURRENCY" default:"4"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.EnrichConcurrency < 1 {
		return nil, fmt.Errorf("ENRICH_CONCURRENCY must be at least 1, got %d", cfg.EnrichConcurrency)
	}

	return &cfg, nil
}

// CatalogTimeoutDuration returns the catalog call timeout as a duration
func (c *Config) CatalogTimeoutDuration() time.Duration {
	return time.Duration(c.CatalogTimeout) * time.Second
}

// LyricsTimeoutDuration returns the lyrics call timeout as a duration
func (c *Config) LyricsTimeoutDuration() time.Duration {
	return time.Duration(c.LyricsTimeout) * time.Second
}

// LLMTimeoutDuration returns the LLM call timeout as a duration
func (c *Config) LLMTimeoutDuration() time.Duration {
	return time.Duration(c.LLMTimeout) * time.Second
}

// LLMEnabled reports whether LLM-backed stages can run at all
func (c *Config) LLMEnabled() bool {
	return c.OpenAIAPIKey != ""
}
