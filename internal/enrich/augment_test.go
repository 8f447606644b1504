package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tunesage/internal/llm"
	"tunesage/internal/models"
	"tunesage/internal/services"
)

func augmentTestSong() *models.EnrichedSong {
	song := models.NewEnrichedSong(models.SongQuery{Title: "Trains", Artist: "Porcupine Tree"})
	song.CatalogMatch = &models.CatalogMatch{
		CatalogID:        "track-1",
		CanonicalTitle:   "Trains",
		CanonicalArtists: []string{"Porcupine Tree"},
	}
	song.ArtistGenres = []string{"progressive rock"}
	return song
}

func TestAugment_MergesAttributes(t *testing.T) {
	reply := `{
		"composers": ["Steven Wilson"],
		"producers": ["Steven Wilson"],
		"specific_sub_genres": ["Progressive Rock", "Art Rock"],
		"mood_atmosphere_tempo": {"moods": ["wistful"], "atmosphere": ["dreamy"], "tempo_description": "mid-tempo"}
	}`

	mockLLM := &services.MockLLMClient{}
	mockLLM.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.Model == "gpt-4o" &&
			req.Temperature == 0.2 &&
			req.MaxTokens == 3000 &&
			req.JSONMode
	})).Return(reply, nil)

	song := augmentTestSong()
	applied := NewAugmenter(mockLLM, "gpt-4o", time.Minute).Augment(context.Background(), song)

	assert.True(t, applied)
	require.NotNil(t, song.LLMAttributes)
	assert.Equal(t, []any{"Steven Wilson"}, song.LLMAttributes["composers"])
	assert.Equal(t, []any{"Progressive Rock", "Art Rock"}, song.LLMAttributes["specific_sub_genres"])
	mockLLM.AssertExpectations(t)
}

func TestAugment_PromptIncludesKnownDetails(t *testing.T) {
	mockLLM := &services.MockLLMClient{}
	mockLLM.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.SystemPrompt == augmentSystemPrompt && req.UserPrompt != ""
	})).Return(`{"composers": []}`, nil)

	song := augmentTestSong()
	NewAugmenter(mockLLM, "gpt-4o", time.Minute).Augment(context.Background(), song)

	req := mockLLM.Calls[0].Arguments.Get(1).(llm.Request)
	assert.Contains(t, req.UserPrompt, "'Trains' by 'Porcupine Tree'")
	assert.Contains(t, req.UserPrompt, "progressive rock")
	assert.Contains(t, req.UserPrompt, "'composers'")
}

func TestAugment_TransportFailureLeavesRecordUnchanged(t *testing.T) {
	mockLLM := &services.MockLLMClient{}
	mockLLM.On("Complete", mock.Anything, mock.Anything).
		Return("", &llm.Error{Operation: "chat_completion", Message: "boom"})

	song := augmentTestSong()
	applied := NewAugmenter(mockLLM, "gpt-4o", time.Minute).Augment(context.Background(), song)

	assert.False(t, applied)
	assert.Nil(t, song.LLMAttributes)
}

func TestAugment_MalformedJSONLeavesRecordUnchanged(t *testing.T) {
	mockLLM := &services.MockLLMClient{}
	mockLLM.On("Complete", mock.Anything, mock.Anything).Return("composers: Steven Wilson", nil)

	song := augmentTestSong()
	applied := NewAugmenter(mockLLM, "gpt-4o", time.Minute).Augment(context.Background(), song)

	assert.False(t, applied)
	assert.Nil(t, song.LLMAttributes)
}

func TestAugment_NilClientDisabled(t *testing.T) {
	song := augmentTestSong()
	applied := NewAugmenter(nil, "gpt-4o", time.Minute).Augment(context.Background(), song)

	assert.False(t, applied)
	assert.Nil(t, song.LLMAttributes)
}
