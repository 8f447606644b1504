package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tunesage/internal/models"
	"tunesage/internal/services"
)

const defaultSuggestionLimit = 10

// SearchSuggestion is one candidate track for a free-form search
type SearchSuggestion struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
	URL     string   `json:"url,omitempty"`
	Display string   `json:"display"`
}

// SearchSongsResponse represents the response for search suggestions
type SearchSongsResponse struct {
	Results []SearchSuggestion `json:"results"`
	Query   string             `json:"query"`
}

// CreatePlaylistRequest represents the request to create a playlist from
// resolved songs
type CreatePlaylistRequest struct {
	UserID string      `json:"user_id" binding:"required"`
	Name   string      `json:"name" binding:"required"`
	Songs  []SongInput `json:"songs" binding:"required,min=1,dive"`
}

// SongHandler handles catalog search and playlist requests
type SongHandler struct {
	catalog services.CatalogService
}

// NewSongHandler creates a new song handler
func NewSongHandler(catalog services.CatalogService) *SongHandler {
	return &SongHandler{catalog: catalog}
}

// SearchSongs handles GET /api/v1/songs/search
func (h *SongHandler) SearchSongs(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameter 'q' is required",
		})
		return
	}

	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Query parameter 'limit' must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	tracks, err := h.catalog.SearchSuggestions(c.Request.Context(), query, limit)
	if err != nil {
		slog.Error("Song search failed", "query", query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Catalog search failed",
			"details": err.Error(),
		})
		return
	}

	results := make([]SearchSuggestion, 0, len(tracks))
	for _, track := range tracks {
		display := track.Title
		if len(track.Artists) > 0 {
			display += " - " + track.Artists[0].Name
		}
		results = append(results, SearchSuggestion{
			ID:      track.ID,
			Title:   track.Title,
			Artists: track.ArtistNames(),
			URL:     track.URL,
			Display: display,
		})
	}

	c.JSON(http.StatusOK, SearchSongsResponse{Results: results, Query: query})
}

// CreatePlaylist handles POST /api/v1/playlists
func (h *SongHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	tracks := make([]models.SongQuery, len(req.Songs))
	for i, s := range req.Songs {
		tracks[i] = models.SongQuery{Title: s.Title, Artist: s.Artist}
	}

	result, err := h.catalog.CreatePlaylist(c.Request.Context(), req.UserID, req.Name, tracks)
	if err != nil {
		slog.Error("Playlist creation failed", "user_id", req.UserID, "name", req.Name, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to create playlist",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, result)
}
