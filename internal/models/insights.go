package models

// BasicInsights is the 4-field lyrical analysis returned by the fast model.
// Field names mirror the JSON contract the LLM is instructed to follow.
type BasicInsights struct {
	Themes         []string    `json:"themes"`
	Sentiments     []Sentiment `json:"sentiments"`
	Keywords       []string    `json:"keywords"`
	OverallSummary string      `json:"overall_summary"`
}

// Sentiment is one distinct feeling expressed in the lyrics
type Sentiment struct {
	SentimentType string `json:"sentiment_type"`
	Description   string `json:"description"`
}

// EmptyLyricsInsights returns the sentinel used when lyrics were empty and
// analysis was skipped without calling the LLM
func EmptyLyricsInsights() *BasicInsights {
	return &BasicInsights{
		Themes:         []string{},
		Sentiments:     []Sentiment{},
		Keywords:       []string{},
		OverallSummary: "Lyrics were empty.",
	}
}

// RichInsights is the deep lyrical analysis returned by the larger model
type RichInsights struct {
	SongTitle             string        `json:"song_title"`
	ArtistName            string        `json:"artist_name"`
	AnalysisModel         string        `json:"analysis_model"`
	OverallInterpretation string        `json:"overall_interpretation"`
	ConciseSummary        string        `json:"concise_summary"`
	DetailedBreakdown     RichBreakdown `json:"detailed_breakdown"`
	LLMConfidenceNotes    string        `json:"llm_confidence_notes,omitempty"`
}

// RichBreakdown holds the seven analysis facets of a rich insight
type RichBreakdown struct {
	ThemesAndConcepts                  []RichTheme         `json:"themes_and_concepts"`
	NarrativeStructure                 *NarrativeStructure `json:"narrative_structure,omitempty"`
	EmotionsAndSentiments              []RichEmotion       `json:"emotions_and_sentiments"`
	ImageryAndSymbols                  []RichImage         `json:"imagery_and_symbols"`
	LiteraryDevices                    []LiteraryDevice    `json:"literary_devices"`
	LyricalStyleAndTone                *StyleAndTone       `json:"lyrical_style_and_tone,omitempty"`
	CulturalSocialHistoricalReferences []CulturalReference `json:"cultural_social_historical_references"`
	KeyPhrasesOrLines                  []KeyPhrase         `json:"key_phrases_or_lines"`
}

type RichTheme struct {
	Theme           string   `json:"theme"`
	Description     string   `json:"description"`
	RelatedKeywords []string `json:"related_keywords"`
}

type NarrativeStructure struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

type RichEmotion struct {
	Emotion         string `json:"emotion"`
	Intensity       string `json:"intensity"`
	LyricalEvidence string `json:"lyrical_evidence"`
	ProgressionNote string `json:"progression_note,omitempty"`
}

type RichImage struct {
	ImageOrSymbol string `json:"image_or_symbol"`
	Description   string `json:"description"`
	Type          string `json:"type"`
}

type LiteraryDevice struct {
	Device        string `json:"device"`
	ExampleLyrics string `json:"example_lyrics"`
	Explanation   string `json:"explanation"`
}

type StyleAndTone struct {
	StyleDescriptors   []string `json:"style_descriptors"`
	ToneDescriptors    []string `json:"tone_descriptors"`
	OverallDescription string   `json:"overall_description"`
}

type CulturalReference struct {
	ReferenceType string `json:"reference_type"`
	Details       string `json:"details"`
}

type KeyPhrase struct {
	Phrase       string `json:"phrase"`
	Significance string `json:"significance"`
}

// EmptyLyricsRichInsights returns the structurally-complete sentinel produced
// when rich analysis is skipped for empty lyrics
func EmptyLyricsRichInsights(title, artist, model string) *RichInsights {
	return &RichInsights{
		SongTitle:             title,
		ArtistName:            artist,
		AnalysisModel:         model,
		OverallInterpretation: "Lyrics were empty.",
		ConciseSummary:        "Lyrics were empty.",
		LLMConfidenceNotes:    "Analysis skipped due to empty lyrics.",
	}
}

// Recommendation is one suggested song with the LLM's reasoning
type Recommendation struct {
	Artist        string `json:"artist"`
	Title         string `json:"title"`
	Justification string `json:"justification"`
}

// NormalizedKey returns the case-insensitive dedup key for a recommendation
func (r Recommendation) NormalizedKey() string {
	return SongQuery{Title: r.Title, Artist: r.Artist}.NormalizedKey()
}
