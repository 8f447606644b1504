package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tunesage/internal/llm"
	"tunesage/internal/models"
)

// MockCatalogService is a mock implementation of CatalogService for testing
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetServiceName() string {
	return "mock"
}

func (m *MockCatalogService) SearchTrack(ctx context.Context, query SearchQuery) (*TrackInfo, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TrackInfo), args.Error(1)
}

func (m *MockCatalogService) SearchSuggestions(ctx context.Context, query string, limit int) ([]*TrackInfo, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*TrackInfo), args.Error(1)
}

func (m *MockCatalogService) GetArtistGenres(ctx context.Context, artistID string) ([]string, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCatalogService) CreatePlaylist(ctx context.Context, userID, name string, tracks []models.SongQuery) (*PlaylistResult, error) {
	args := m.Called(ctx, userID, name, tracks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlaylistResult), args.Error(1)
}

func (m *MockCatalogService) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLyricsProvider is a mock lyrics provider for testing
type MockLyricsProvider struct {
	mock.Mock
}

func (m *MockLyricsProvider) Name() string {
	return "mock"
}

func (m *MockLyricsProvider) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	args := m.Called(ctx, title, artist)
	return args.String(0), args.Error(1)
}

// MockLLMClient is a mock LLM client for testing
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
