package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2/clientcredentials"

	"tunesage/internal/cache"
	"tunesage/internal/models"
)

// spotifyService implements CatalogService for Spotify
type spotifyService struct {
	client      *resty.Client
	apiURL      string
	tokenSource *clientcredentials.Config
	cache       cache.Cache
	accessToken string
	tokenExpiry time.Time
	mu          sync.RWMutex
}

// Spotify API endpoints
const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyAPIURL   = "https://api.spotify.com/v1"

	genreCacheTTL = 24 * time.Hour
)

// NewSpotifyService creates a Spotify-backed catalog service. The cache
// fronts artist-genre lookups and may be nil to disable caching.
func NewSpotifyService(clientID, clientSecret string, timeout time.Duration, genreCache cache.Cache) CatalogService {
	tokenSource := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &spotifyService{
		client:      client,
		apiURL:      spotifyAPIURL,
		tokenSource: tokenSource,
		cache:       genreCache,
	}
}

// GetServiceName returns the catalog name
func (s *spotifyService) GetServiceName() string {
	return "spotify"
}

// SearchTrack returns the top search hit for a query
func (s *spotifyService) SearchTrack(ctx context.Context, query SearchQuery) (*TrackInfo, error) {
	tracks, err := s.search(ctx, s.buildSearchQuery(query), 1)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ErrNoMatch
	}
	return tracks[0], nil
}

// SearchSuggestions returns up to limit matches for a free-form query
func (s *spotifyService) SearchSuggestions(ctx context.Context, query string, limit int) ([]*TrackInfo, error) {
	if limit == 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50 // Spotify API limit
	}
	return s.search(ctx, query, limit)
}

func (s *spotifyService) search(ctx context.Context, searchQuery string, limit int) ([]*TrackInfo, error) {
	token, err := s.ensureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var searchResult spotifySearchResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"q":     searchQuery,
			"type":  "track",
			"limit": fmt.Sprintf("%d", limit),
		}).
		SetResult(&searchResult).
		Get(s.apiURL + "/search")

	if err != nil {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "search",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "search",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	tracks := make([]*TrackInfo, 0, len(searchResult.Tracks.Items))
	for _, track := range searchResult.Tracks.Items {
		tracks = append(tracks, convertSpotifyTrack(&track))
	}

	return tracks, nil
}

// GetArtistGenres returns the genres Spotify attributes to an artist
func (s *spotifyService) GetArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	cacheKey := "spotify:artist_genres:" + artistID

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && data != nil {
			var genres []string
			if err := json.Unmarshal(data, &genres); err == nil {
				return genres, nil
			}
		}
	}

	token, err := s.ensureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var artist spotifyArtistDetail
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&artist).
		Get(fmt.Sprintf("%s/artists/%s", s.apiURL, artistID))

	if err != nil {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "get_artist",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "get_artist",
			Message:   "artist not found",
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "get_artist",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	genres := artist.Genres
	if genres == nil {
		genres = []string{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(genres); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, genreCacheTTL); err != nil {
				slog.Warn("Failed to cache artist genres", "artistID", artistID, "error", err)
			}
		}
	}

	return genres, nil
}

// CreatePlaylist resolves each track ref via search and creates a playlist
// containing the found tracks. Unresolvable refs are reported, not fatal.
func (s *spotifyService) CreatePlaylist(ctx context.Context, userID, name string, tracks []models.SongQuery) (*PlaylistResult, error) {
	token, err := s.ensureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var uris []string
	var notFound []models.SongQuery
	for _, ref := range tracks {
		match, err := s.SearchTrack(ctx, SearchQuery{Title: ref.Title, Artist: ref.Artist})
		if err != nil {
			notFound = append(notFound, ref)
			continue
		}
		uris = append(uris, "spotify:track:"+match.ID)
	}

	if len(uris) == 0 {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "create_playlist",
			Message:   "none of the requested tracks could be resolved",
		}
	}

	var playlist spotifyPlaylist
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]any{
			"name":        name,
			"description": "Generated by tunesage",
			"public":      false,
		}).
		SetResult(&playlist).
		Post(fmt.Sprintf("%s/users/%s/playlists", s.apiURL, userID))

	if err != nil {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "create_playlist",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "create_playlist",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	resp, err = s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]any{"uris": uris}).
		Post(fmt.Sprintf("%s/playlists/%s/tracks", s.apiURL, playlist.ID))

	if err != nil {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "add_tracks",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		return nil, &CatalogError{
			Service:   "spotify",
			Operation: "add_tracks",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	return &PlaylistResult{
		URL:        playlist.ExternalURLs.Spotify,
		AddedCount: len(uris),
		NotFound:   notFound,
	}, nil
}

// Health checks Spotify API health
func (s *spotifyService) Health(ctx context.Context) error {
	_, err := s.ensureValidToken(ctx)
	return err
}

// ensureValidToken ensures we have a valid access token
func (s *spotifyService) ensureValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	token, err := s.tokenSource.Token(ctx)
	if err != nil {
		return "", &CatalogError{
			Service:   "spotify",
			Operation: "auth",
			Message:   "failed to get access token",
			Err:       err,
		}
	}

	s.accessToken = token.AccessToken
	s.tokenExpiry = token.Expiry

	slog.Info("Spotify access token refreshed", "expires_at", token.Expiry)

	return s.accessToken, nil
}

// buildSearchQuery constructs a search query string for Spotify
func (s *spotifyService) buildSearchQuery(query SearchQuery) string {
	if query.Query != "" {
		return query.Query
	}

	var parts []string
	if query.Title != "" {
		parts = append(parts, fmt.Sprintf("track:\"%s\"", query.Title))
	}
	if query.Artist != "" {
		parts = append(parts, fmt.Sprintf("artist:\"%s\"", query.Artist))
	}

	if len(parts) == 0 {
		return "*"
	}

	return strings.Join(parts, " ")
}

// convertSpotifyTrack converts a Spotify API track to TrackInfo
func convertSpotifyTrack(track *spotifyTrack) *TrackInfo {
	artists := make([]Artist, len(track.Artists))
	for i, artist := range track.Artists {
		artists[i] = Artist{ID: artist.ID, Name: artist.Name}
	}

	return &TrackInfo{
		ID:      track.ID,
		Title:   track.Name,
		Artists: artists,
		URL:     fmt.Sprintf("https://open.spotify.com/track/%s", track.ID),
	}
}

// Spotify API response structures
type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artists"`
}

type spotifySearchResult struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyArtistDetail struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

type spotifyPlaylist struct {
	ID           string `json:"id"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}
