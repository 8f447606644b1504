package models

import "strings"

// SongQuery represents a raw user-provided liked song
type SongQuery struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// NormalizedKey returns a case-insensitive "title|artist" key used for
// duplicate detection between liked songs and recommendations
func (q SongQuery) NormalizedKey() string {
	return strings.ToLower(strings.TrimSpace(q.Title)) + "|" + strings.ToLower(strings.TrimSpace(q.Artist))
}

// CatalogMatch represents the catalog's canonical identification of a song
type CatalogMatch struct {
	CatalogID      string   `json:"catalog_id"`
	CanonicalTitle string   `json:"canonical_title"`
	// Credited artists in catalog order; the first entry is the primary artist
	CanonicalArtists []string `json:"canonical_artists"`
	ExternalURL      string   `json:"external_url,omitempty"`
}

// PrimaryArtist returns the first credited artist, or empty when unknown
func (m *CatalogMatch) PrimaryArtist() string {
	if m == nil || len(m.CanonicalArtists) == 0 {
		return ""
	}
	return m.CanonicalArtists[0]
}

// AnalysisState records whether a lyrical analysis stage ran and how it ended.
// Absence of insights can mean the stage never ran (no lyrics, no client) or
// that it ran and the LLM reply was unusable; callers that retry care about
// the difference.
type AnalysisState string

const (
	AnalysisNotAttempted AnalysisState = "not_attempted"
	AnalysisFailed       AnalysisState = "failed"
	AnalysisSucceeded    AnalysisState = "succeeded"
	// AnalysisSkippedEmpty marks the sentinel produced when lyrics were
	// present-but-empty, distinct from a failed attempt
	AnalysisSkippedEmpty AnalysisState = "skipped_empty_lyrics"
)

// EnrichedSong is the central aggregate built incrementally by the enrichment
// pipeline. Every field beyond Query is best-effort: a failed collaborator
// call leaves its field absent and the record still flows downstream.
type EnrichedSong struct {
	Query        SongQuery     `json:"query"`
	CatalogMatch *CatalogMatch `json:"catalog_match,omitempty"`

	// Empty when the genre lookup failed or the song is unidentified
	ArtistGenres []string `json:"artist_genres"`

	Lyrics string `json:"lyrics,omitempty"`

	InsightsState   AnalysisState  `json:"insights_state"`
	LyricalInsights *BasicInsights `json:"lyrical_insights,omitempty"`

	RichAnalysisState AnalysisState `json:"rich_analysis_state"`
	RichAnalysis      *RichInsights `json:"rich_lyrical_analysis,omitempty"`

	// Inferred musicological attributes merged from the LLM; keys here are
	// authoritative over any same-named field already in the record
	LLMAttributes map[string]any `json:"llm_attributes,omitempty"`
}

// NewEnrichedSong creates a minimally-populated record for a query
func NewEnrichedSong(q SongQuery) *EnrichedSong {
	return &EnrichedSong{
		Query:             q,
		ArtistGenres:      []string{},
		InsightsState:     AnalysisNotAttempted,
		RichAnalysisState: AnalysisNotAttempted,
	}
}

// Identified reports whether the catalog recognized this song. Unidentified
// songs are excluded from similarity scoring and recommendation input.
func (s *EnrichedSong) Identified() bool {
	return s.CatalogMatch != nil
}

// DisplayTitle returns the canonical title when identified, falling back to
// the raw query title
func (s *EnrichedSong) DisplayTitle() string {
	if s.CatalogMatch != nil && s.CatalogMatch.CanonicalTitle != "" {
		return s.CatalogMatch.CanonicalTitle
	}
	return s.Query.Title
}

// DisplayArtist returns the primary canonical artist when identified, falling
// back to the raw query artist
func (s *EnrichedSong) DisplayArtist() string {
	if artist := s.CatalogMatch.PrimaryArtist(); artist != "" {
		return artist
	}
	return s.Query.Artist
}

// MergeLLMAttributes merges augmentation output into the record. New keys are
// added and colliding keys are overwritten; the LLM wins every collision.
func (s *EnrichedSong) MergeLLMAttributes(attrs map[string]any) {
	if len(attrs) == 0 {
		return
	}
	if s.LLMAttributes == nil {
		s.LLMAttributes = make(map[string]any, len(attrs))
	}
	for k, v := range attrs {
		s.LLMAttributes[k] = v
	}
}

// Themes returns the basic-insight themes, or nil when analysis is unavailable
func (s *EnrichedSong) Themes() []string {
	if s.InsightsState != AnalysisSucceeded || s.LyricalInsights == nil {
		return nil
	}
	return s.LyricalInsights.Themes
}

// Keywords returns the basic-insight keywords, or nil when analysis is unavailable
func (s *EnrichedSong) Keywords() []string {
	if s.InsightsState != AnalysisSucceeded || s.LyricalInsights == nil {
		return nil
	}
	return s.LyricalInsights.Keywords
}
