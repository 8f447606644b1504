package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tunesage/internal/cache"
	"tunesage/internal/config"
	"tunesage/internal/enrich"
	"tunesage/internal/handlers"
	"tunesage/internal/llm"
	"tunesage/internal/lyrics"
	"tunesage/internal/recommend"
	"tunesage/internal/services"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize cache: Valkey when configured, in-memory otherwise
	cacheClient := buildCache(cfg)
	defer cacheClient.Close()

	// Catalog service
	spotifyService := services.NewSpotifyService(
		cfg.SpotifyClientID, cfg.SpotifyClientSecret, cfg.CatalogTimeoutDuration(), cacheClient)

	// Lyrics providers: Genius when a token is configured, keyless LyricsOVH
	// as the fallback
	var geniusProvider lyrics.Provider
	if cfg.GeniusAccessToken != "" {
		geniusProvider = lyrics.NewGeniusProvider(cfg.GeniusAccessToken, cfg.LyricsTimeoutDuration())
	} else {
		slog.Warn("GENIUS_ACCESS_TOKEN not set, Genius lyrics provider disabled")
	}
	lyricsChain := lyrics.NewChain(geniusProvider, lyrics.NewLyricsOVHProvider(cfg.LyricsTimeoutDuration()))

	// LLM client; a missing key degrades every LLM stage to "always absent"
	var llmClient llm.Client
	if cfg.LLMEnabled() {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMTimeoutDuration())
	} else {
		slog.Warn("OPENAI_API_KEY not set, lyrical analysis and recommendations disabled")
	}

	analyzer := enrich.NewAnalyzer(llmClient, cfg.AnalysisModel, cfg.EnrichmentModel, cfg.LLMTimeoutDuration())
	augmenter := enrich.NewAugmenter(llmClient, cfg.EnrichmentModel, cfg.LLMTimeoutDuration())
	orchestrator := enrich.NewOrchestrator(
		spotifyService, lyricsChain, analyzer, augmenter, cacheClient,
		cfg.CatalogTimeoutDuration(), cfg.LyricsTimeoutDuration(), cfg.EnrichConcurrency)
	generator := recommend.NewGenerator(llmClient, cfg.RecommendationModel, cfg.LLMTimeoutDuration())

	// Handlers
	recommendationHandler := handlers.NewRecommendationHandler(orchestrator, generator)
	songHandler := handlers.NewSongHandler(spotifyService)
	healthHandler := handlers.NewHealthHandler(spotifyService, cacheClient)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/songs/search", songHandler.SearchSongs)
		v1.POST("/recommendations", recommendationHandler.GenerateRecommendations)
		v1.POST("/playlists", songHandler.CreatePlaylist)
	}

	slog.Info("Starting server", "port", cfg.Port, "llm_enabled", cfg.LLMEnabled())
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func buildCache(cfg *config.Config) cache.Cache {
	if cfg.ValkeyURL == "" {
		slog.Info("VALKEY_URL not set, using in-memory cache")
		return cache.NewMemoryCache(1000)
	}

	valkeyCache, err := cache.NewValkeyCache(cfg.ValkeyURL)
	if err != nil {
		slog.Warn("Failed to connect to Valkey, falling back to in-memory cache", "error", err)
		return cache.NewMemoryCache(1000)
	}
	return valkeyCache
}
