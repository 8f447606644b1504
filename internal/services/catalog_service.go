package services

import (
	"context"
	"errors"

	"tunesage/internal/models"
)

// ErrNoMatch indicates the catalog was reached but found no matching track.
// Distinct from transport failures so callers can tell a miss from an outage.
var ErrNoMatch = errors.New("no matching track found")

// CatalogService defines the narrow music-catalog capability the pipeline
// consumes: track search, artist genres, and playlist creation
type CatalogService interface {
	// GetServiceName returns the catalog name
	GetServiceName() string

	// SearchTrack returns the catalog's top match for a query, or ErrNoMatch
	SearchTrack(ctx context.Context, query SearchQuery) (*TrackInfo, error)

	// SearchSuggestions returns up to limit matches for a free-form query
	SearchSuggestions(ctx context.Context, query string, limit int) ([]*TrackInfo, error)

	// GetArtistGenres returns the genres the catalog attributes to an artist
	GetArtistGenres(ctx context.Context, artistID string) ([]string, error)

	// CreatePlaylist resolves track refs and creates a playlist for a user
	CreatePlaylist(ctx context.Context, userID, name string, tracks []models.SongQuery) (*PlaylistResult, error)

	// Health checks whether the catalog is reachable
	Health(ctx context.Context) error
}

// SearchQuery represents a track search against the catalog
type SearchQuery struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Query  string `json:"query,omitempty"` // Free-form search query
	Limit  int    `json:"limit,omitempty"`
}

// Artist is one credited artist on a catalog track
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TrackInfo represents track information from the catalog
type TrackInfo struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Artists []Artist `json:"artists"`
	URL     string   `json:"url"`
}

// ArtistNames returns the credited artist names in catalog order
func (t *TrackInfo) ArtistNames() []string {
	names := make([]string, len(t.Artists))
	for i, artist := range t.Artists {
		names[i] = artist.Name
	}
	return names
}

// PrimaryArtistID returns the first credited artist's catalog ID
func (t *TrackInfo) PrimaryArtistID() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0].ID
}

// ToCatalogMatch converts catalog track info into the pipeline's match record
func (t *TrackInfo) ToCatalogMatch() *models.CatalogMatch {
	return &models.CatalogMatch{
		CatalogID:        t.ID,
		CanonicalTitle:   t.Title,
		CanonicalArtists: t.ArtistNames(),
		ExternalURL:      t.URL,
	}
}

// PlaylistResult reports the outcome of a playlist creation
type PlaylistResult struct {
	URL        string             `json:"url"`
	AddedCount int                `json:"added_count"`
	NotFound   []models.SongQuery `json:"not_found"`
}

// CatalogError represents a catalog operation failure
type CatalogError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

func (e *CatalogError) Error() string {
	msg := e.Service + " " + e.Operation + " failed: " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}
