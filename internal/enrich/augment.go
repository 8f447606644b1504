package enrich

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"tunesage/internal/llm"
	"tunesage/internal/models"
)

const augmentSystemPrompt = "You are an expert musicologist providing detailed song information in JSON format."

const augmentAttributeKeys = `Format your response as a JSON object with the following keys (use null or an empty list if information is not found/applicable):
- 'composers': (list of strings) Names of the composer(s).
- 'producers': (list of strings) Names of the producer(s).
- 'lyricists': (list of strings) Names of the lyricist(s), if different from composers or performing artists.
- 'recording_studios': (list of strings) Names of the recording studio(s) where the song was primarily recorded.
- 'session_musicians': (list of objects, each with 'name' and 'instrument' fields) Notable session musicians or guest performers and their instruments.
- 'specific_sub_genres': (list of strings) More specific sub-genre classifications beyond broad terms (e.g., 'Progressive Metal', 'Ambient Techno', 'Neo-Soul').
- 'instrumentation_details': (list of strings) Key instruments or notable instrumental features (e.g., 'prominent use of saxophone solo', 'driven by a Moog synthesizer riff', 'features a string quartet').
- 'mood_atmosphere_tempo': (object with 'moods': [list of strings], 'atmosphere': [list of strings], 'tempo_description': string) Describe the overall mood (e.g., 'melancholy', 'uplifting', 'aggressive'), atmosphere (e.g., 'dreamy', 'intense', 'sparse'), and tempo (e.g., 'slow-tempo ballad', 'mid-tempo groove', 'fast-paced rocker').
- 'historical_context_significance': (string) Any notable historical context, cultural impact, or significance of the track (e.g., 'pioneering track in the X genre', 'a response to Y social event', 'won Z award').
- 'llm_confidence_notes': (string) Any notes about the confidence of the provided information or if certain parts are speculative.
Ensure the entire output is a single valid JSON object.`

// Augmenter asks the LLM for musicological attributes the catalog cannot
// provide (composers, producers, sub-genres, mood). Augmentation is strictly
// additive: any failure leaves the record exactly as it was.
type Augmenter struct {
	llm     llm.Client
	model   string
	timeout time.Duration
}

// NewAugmenter creates a song-detail augmenter. A nil client disables it.
func NewAugmenter(client llm.Client, model string, timeout time.Duration) *Augmenter {
	return &Augmenter{llm: client, model: model, timeout: timeout}
}

// Augment fetches inferred attributes for a song and merges them into the
// record. Returns true when attributes were merged.
func (a *Augmenter) Augment(ctx context.Context, song *models.EnrichedSong) bool {
	if a == nil || a.llm == nil {
		return false
	}

	title := song.DisplayTitle()
	artist := song.DisplayArtist()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.llm.Complete(callCtx, llm.Request{
		Model:        a.model,
		SystemPrompt: augmentSystemPrompt,
		UserPrompt:   a.buildPrompt(song, title, artist),
		Temperature:  0.2,
		MaxTokens:    3000,
		JSONMode:     true,
	})
	if err != nil {
		slog.Warn("Song augmentation failed", "title", title, "artist", artist, "error", err)
		return false
	}

	var attrs map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &attrs); err != nil {
		slog.Warn("Song augmentation returned malformed JSON", "title", title, "error", err)
		return false
	}
	if len(attrs) == 0 {
		slog.Debug("Song augmentation returned no attributes", "title", title)
		return false
	}

	song.MergeLLMAttributes(attrs)
	return true
}

func (a *Augmenter) buildPrompt(song *models.EnrichedSong, title, artist string) string {
	known := map[string]any{
		"title":  title,
		"artist": artist,
	}
	if len(song.ArtistGenres) > 0 {
		known["artist_genres"] = song.ArtistGenres
	}
	if song.CatalogMatch != nil && song.CatalogMatch.ExternalURL != "" {
		known["catalog_url"] = song.CatalogMatch.ExternalURL
	}
	knownJSON, err := json.MarshalIndent(known, "", "  ")
	if err != nil {
		knownJSON = []byte("{}")
	}

	return "You are an expert musicologist and researcher. Your task is to provide detailed and accurate information about the song '" + title + "' by '" + artist + "'.\n" +
		"Given the following known details (if any):\n" +
		string(knownJSON) + "\n\n" +
		"Please research and provide the following additional information. If any piece of information is speculative or not commonly known, please indicate that or omit it if confidence is very low.\n" +
		augmentAttributeKeys
}
