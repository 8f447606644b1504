package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tunesage/internal/enrich"
	"tunesage/internal/models"
	"tunesage/internal/recommend"
	"tunesage/internal/similarity"
)

// SongInput is one liked song in a request body
type SongInput struct {
	Title  string `json:"title" binding:"required"`
	Artist string `json:"artist" binding:"required"`
}

// RecommendationRequest represents the request to generate recommendations
// from a list of liked songs
type RecommendationRequest struct {
	Songs []SongInput `json:"songs" binding:"required,min=1,dive"`
}

// RecommendationResponse carries the recommendations alongside the enriched
// profile they were generated from
type RecommendationResponse struct {
	LikedSongs      []*models.EnrichedSong  `json:"liked_songs"`
	Recommendations []models.Recommendation `json:"recommendations"`
	Similarity      *SimilarityReport       `json:"similarity,omitempty"`
}

// SimilarityReport is the pairwise content-similarity matrix for the
// catalog-identified liked songs
type SimilarityReport struct {
	Songs  []string    `json:"songs"`
	Matrix [][]float64 `json:"matrix"`
}

// RecommendationHandler runs the enrichment pipeline and the holistic
// recommendation call
type RecommendationHandler struct {
	orchestrator *enrich.Orchestrator
	generator    *recommend.Generator
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(orchestrator *enrich.Orchestrator, generator *recommend.Generator) *RecommendationHandler {
	return &RecommendationHandler{
		orchestrator: orchestrator,
		generator:    generator,
	}
}

// GenerateRecommendations handles POST /api/v1/recommendations
func (h *RecommendationHandler) GenerateRecommendations(c *gin.Context) {
	var req RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	queries := make([]models.SongQuery, len(req.Songs))
	for i, s := range req.Songs {
		queries[i] = models.SongQuery{Title: s.Title, Artist: s.Artist}
	}

	ctx := c.Request.Context()
	songs := h.orchestrator.EnrichAll(ctx, queries)
	h.orchestrator.DeepEnrichAll(ctx, songs)

	identified := make([]*models.EnrichedSong, 0, len(songs))
	for _, song := range songs {
		if song.Identified() {
			identified = append(identified, song)
		}
	}

	recs, err := h.generator.Recommend(ctx, identified)
	if err != nil {
		slog.Error("Failed to generate recommendations", "songs", len(identified), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to generate recommendations",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, RecommendationResponse{
		LikedSongs:      songs,
		Recommendations: recs,
		Similarity:      buildSimilarityReport(identified),
	})
}

// buildSimilarityReport computes the pairwise matrix. Needs at least two
// identified songs to be meaningful.
func buildSimilarityReport(identified []*models.EnrichedSong) *SimilarityReport {
	if len(identified) < 2 {
		return nil
	}

	labels := make([]string, len(identified))
	for i, song := range identified {
		labels[i] = song.DisplayTitle() + " - " + song.DisplayArtist()
	}

	return &SimilarityReport{
		Songs:  labels,
		Matrix: similarity.Matrix(identified, similarity.DefaultWeights()),
	}
}
