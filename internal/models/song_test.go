package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnrichedSong(t *testing.T) {
	song := NewEnrichedSong(SongQuery{Title: "Hey Jude", Artist: "The Beatles"})

	assert.Equal(t, "Hey Jude", song.Query.Title)
	assert.False(t, song.Identified())
	assert.NotNil(t, song.ArtistGenres)
	assert.Empty(t, song.ArtistGenres)
	assert.Equal(t, AnalysisNotAttempted, song.InsightsState)
	assert.Equal(t, AnalysisNotAttempted, song.RichAnalysisState)
	assert.Nil(t, song.LyricalInsights)
	assert.Nil(t, song.LLMAttributes)
}

func TestEnrichedSong_DisplayNames(t *testing.T) {
	song := NewEnrichedSong(SongQuery{Title: "hey jude - remastered", Artist: "beatles"})

	// Unidentified songs fall back to raw query strings
	assert.Equal(t, "hey jude - remastered", song.DisplayTitle())
	assert.Equal(t, "beatles", song.DisplayArtist())

	song.CatalogMatch = &CatalogMatch{
		CatalogID:        "abc123",
		CanonicalTitle:   "Hey Jude",
		CanonicalArtists: []string{"The Beatles", "Billy Preston"},
	}

	assert.True(t, song.Identified())
	assert.Equal(t, "Hey Jude", song.DisplayTitle())
	assert.Equal(t, "The Beatles", song.DisplayArtist())
}

func TestCatalogMatch_PrimaryArtist_Nil(t *testing.T) {
	var m *CatalogMatch
	assert.Equal(t, "", m.PrimaryArtist())
}

func TestEnrichedSong_MergeLLMAttributes(t *testing.T) {
	song := NewEnrichedSong(SongQuery{Title: "X", Artist: "Y"})
	song.LLMAttributes = map[string]any{"genre": "rock"}

	song.MergeLLMAttributes(map[string]any{
		"genre":     "metal",
		"composers": []string{"A"},
	})

	// LLM wins on key collision
	assert.Equal(t, "metal", song.LLMAttributes["genre"])
	assert.Equal(t, []string{"A"}, song.LLMAttributes["composers"])
}

func TestEnrichedSong_MergeLLMAttributes_Empty(t *testing.T) {
	song := NewEnrichedSong(SongQuery{Title: "X", Artist: "Y"})
	song.MergeLLMAttributes(nil)
	assert.Nil(t, song.LLMAttributes)
}

func TestEnrichedSong_ThemesAndKeywords(t *testing.T) {
	song := NewEnrichedSong(SongQuery{Title: "X", Artist: "Y"})
	assert.Nil(t, song.Themes())
	assert.Nil(t, song.Keywords())

	song.InsightsState = AnalysisSucceeded
	song.LyricalInsights = &BasicInsights{
		Themes:   []string{"loss"},
		Keywords: []string{"rain"},
	}

	assert.Equal(t, []string{"loss"}, song.Themes())
	assert.Equal(t, []string{"rain"}, song.Keywords())

	// A failed analysis never exposes partial values
	song.InsightsState = AnalysisFailed
	assert.Nil(t, song.Themes())
	assert.Nil(t, song.Keywords())
}

func TestSongQuery_NormalizedKey(t *testing.T) {
	a := SongQuery{Title: "Hey Jude", Artist: "The Beatles"}
	b := SongQuery{Title: "  hey jude ", Artist: "the beatles"}
	assert.Equal(t, a.NormalizedKey(), b.NormalizedKey())

	rec := Recommendation{Title: "HEY JUDE", Artist: "The Beatles"}
	assert.Equal(t, a.NormalizedKey(), rec.NormalizedKey())
}

func TestEmptyLyricsSentinels(t *testing.T) {
	basic := EmptyLyricsInsights()
	require.NotNil(t, basic)
	assert.Empty(t, basic.Themes)
	assert.Equal(t, "Lyrics were empty.", basic.OverallSummary)

	rich := EmptyLyricsRichInsights("Hey Jude", "The Beatles", "gpt-4o")
	require.NotNil(t, rich)
	assert.Equal(t, "Hey Jude", rich.SongTitle)
	assert.Equal(t, "gpt-4o", rich.AnalysisModel)
	assert.Equal(t, "Analysis skipped due to empty lyrics.", rich.LLMConfidenceNotes)
	assert.Empty(t, rich.DetailedBreakdown.ThemesAndConcepts)
}
