package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunesage/internal/models"
)

// newTestSpotifyService returns a service pointed at a test server with a
// pre-seeded token so no auth round-trip happens
func newTestSpotifyService(serverURL string) *spotifyService {
	return &spotifyService{
		client:      resty.New().SetTimeout(5 * time.Second),
		apiURL:      serverURL,
		accessToken: "test-token",
		tokenExpiry: time.Now().Add(time.Hour),
	}
}

func spotifySearchPayload(tracks ...map[string]any) map[string]any {
	return map[string]any{
		"tracks": map[string]any{"items": tracks},
	}
}

func TestSpotifyService_SearchTrack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, `track:"Hey Jude" artist:"The Beatles"`, r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(spotifySearchPayload(map[string]any{
			"id":   "0aym2LBJBk9DAYuHHutrIl",
			"name": "Hey Jude",
			"artists": []map[string]string{
				{"id": "3WrFJ7ztbogyGnTHbHJFl2", "name": "The Beatles"},
			},
		}))
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	track, err := service.SearchTrack(context.Background(), SearchQuery{Title: "Hey Jude", Artist: "The Beatles"})

	require.NoError(t, err)
	assert.Equal(t, "0aym2LBJBk9DAYuHHutrIl", track.ID)
	assert.Equal(t, "Hey Jude", track.Title)
	assert.Equal(t, []string{"The Beatles"}, track.ArtistNames())
	assert.Equal(t, "3WrFJ7ztbogyGnTHbHJFl2", track.PrimaryArtistID())
	assert.Equal(t, "https://open.spotify.com/track/0aym2LBJBk9DAYuHHutrIl", track.URL)
}

func TestSpotifyService_SearchTrack_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(spotifySearchPayload())
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	track, err := service.SearchTrack(context.Background(), SearchQuery{Title: "does not exist"})

	assert.Nil(t, track)
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestSpotifyService_SearchTrack_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	_, err := service.SearchTrack(context.Background(), SearchQuery{Title: "Hey Jude"})

	require.Error(t, err)
	var catErr *CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "spotify", catErr.Service)
	assert.Equal(t, "search", catErr.Operation)
	assert.NotErrorIs(t, err, ErrNoMatch)
}

func TestSpotifyService_SearchSuggestions_LimitClamped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(spotifySearchPayload())
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	_, err := service.SearchSuggestions(context.Background(), "hey jude", 100)
	require.NoError(t, err)
}

func TestSpotifyService_GetArtistGenres(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/artists/3WrFJ7ztbogyGnTHbHJFl2", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "3WrFJ7ztbogyGnTHbHJFl2",
			"name":   "The Beatles",
			"genres": []string{"british invasion", "merseybeat"},
		})
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	genres, err := service.GetArtistGenres(context.Background(), "3WrFJ7ztbogyGnTHbHJFl2")

	require.NoError(t, err)
	assert.Equal(t, []string{"british invasion", "merseybeat"}, genres)
}

func TestSpotifyService_GetArtistGenres_NilBecomesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "name": "Unknown"})
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	genres, err := service.GetArtistGenres(context.Background(), "x")

	require.NoError(t, err)
	assert.NotNil(t, genres)
	assert.Empty(t, genres)
}

func TestSpotifyService_CreatePlaylist(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/search":
			query := r.URL.Query().Get("q")
			if query == `track:"Unfindable" artist:"Nobody"` {
				json.NewEncoder(w).Encode(spotifySearchPayload())
				return
			}
			json.NewEncoder(w).Encode(spotifySearchPayload(map[string]any{
				"id":      "track1",
				"name":    "Trains",
				"artists": []map[string]string{{"id": "a1", "name": "Porcupine Tree"}},
			}))
		case r.URL.Path == "/users/user42/playlists":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{
				"id":            "pl1",
				"external_urls": map[string]string{"spotify": "https://open.spotify.com/playlist/pl1"},
			})
		case r.URL.Path == "/playlists/pl1/tracks":
			var body map[string][]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []string{"spotify:track:track1"}, body["uris"])
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"snapshot_id": "snap"})
		default:
			t.Errorf("unexpected request path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	service := newTestSpotifyService(server.URL)

	result, err := service.CreatePlaylist(context.Background(), "user42", "tunesage picks", []models.SongQuery{
		{Title: "Trains", Artist: "Porcupine Tree"},
		{Title: "Unfindable", Artist: "Nobody"},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://open.spotify.com/playlist/pl1", result.URL)
	assert.Equal(t, 1, result.AddedCount)
	require.Len(t, result.NotFound, 1)
	assert.Equal(t, "Unfindable", result.NotFound[0].Title)
}

func TestCatalogError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &CatalogError{Service: "spotify", Operation: "search", Message: "request failed", Err: inner}

	assert.Contains(t, err.Error(), "spotify search failed")
	assert.ErrorIs(t, err, inner)
}
