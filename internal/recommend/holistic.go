// Package recommend generates holistic song recommendations from the full
// enriched liked-song profile in a single LLM call.
package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tunesage/internal/llm"
	"tunesage/internal/models"
)

// ErrMalformedReply indicates the LLM reply could not be recovered into a
// recommendation list. Distinct from transport failures and from an empty
// reply so callers can tell the three outcomes apart.
var ErrMalformedReply = errors.New("recommendation reply not in a recognized shape")

const holisticSystemPrompt = `You are an exceptionally insightful and creative music recommendation expert with a deep understanding of music history, theory, genres, and lyrical content. Your goal is to provide 10 unique and highly relevant song recommendations based on a user's liked songs and their detailed attributes.

IMPORTANT INSTRUCTIONS:
1.  Analyze ALL provided liked songs to understand the user's overall taste profile, including commonalities and diversities in genre, lyrical themes, mood, instrumentation, and production style.
2.  Generate exactly 10 NEW and DISTINCT song recommendations. These should NOT include any of the songs already present in the user's liked list.
3.  For EACH of the 10 recommendations, provide:
    a.  The song's 'artist'.
    b.  The song's 'title'.
    c.  A detailed 'justification' (2-4 sentences) explaining precisely WHY this song is a good recommendation. This justification MUST connect the recommended song's characteristics back to specific attributes, themes, artists, or moods found in ONE OR MORE of the user's liked songs.
4.  Aim for a mix of recommendations that are:
    a.  Closely aligned with the core of the user's taste.
    b.  Potentially serendipitous discoveries that expand on their taste profile but are still relevant.
5.  The final output MUST be a single, valid JSON array. This array MUST contain exactly 10 JSON objects.
    Each of these 10 objects MUST have the keys "artist", "title", and "justification".
    For example, one object within the array would look like:
    { "artist": "Example Artist", "title": "Example Song Title", "justification": "This song is recommended because..." }
    Your response should be structured as: [ object1, object2, ..., object10 ]

Do not include any other text, explanations, or apologies before or after the JSON array.`

// Generator issues the single holistic recommendation call
type Generator struct {
	llm     llm.Client
	model   string
	timeout time.Duration
}

// NewGenerator creates a recommendation generator
func NewGenerator(client llm.Client, model string, timeout time.Duration) *Generator {
	return &Generator{llm: client, model: model, timeout: timeout}
}

// Recommend generates new-song recommendations from the enriched liked songs.
// Three terminal outcomes: a non-nil error (transport failure or unrecoverable
// reply), an empty list (the LLM explicitly returned nothing), or the
// recommendation list. Recommendations matching a liked song are filtered out.
func (g *Generator) Recommend(ctx context.Context, liked []*models.EnrichedSong) ([]models.Recommendation, error) {
	if g == nil || g.llm == nil {
		return nil, &llm.Error{Operation: "holistic_recommendations", Message: "no LLM client configured"}
	}
	if len(liked) == 0 {
		return []models.Recommendation{}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reply, err := g.llm.Complete(callCtx, llm.Request{
		Model:        g.model,
		SystemPrompt: holisticSystemPrompt,
		UserPrompt:   buildUserPrompt(liked),
		Temperature:  0.7,
		MaxTokens:    3500,
	})
	if err != nil {
		return nil, fmt.Errorf("holistic recommendation call failed: %w", err)
	}

	recs, err := parseReply(reply)
	if err != nil {
		slog.Warn("Unrecoverable recommendation reply", "error", err, "reply_prefix", prefix(reply, 200))
		return nil, err
	}

	return filterLiked(recs, liked), nil
}

func buildUserPrompt(liked []*models.EnrichedSong) string {
	return fmt.Sprintf(`Based on the following liked songs and their detailed analyses:

%s

Please provide 10 new and distinct song recommendations with justifications, following all instructions above.`, serializeLiked(liked))
}

// serializeLiked renders the enriched profile as indented JSON, degrading to a
// flat one-line-per-song summary if serialization fails
func serializeLiked(liked []*models.EnrichedSong) string {
	data, err := json.MarshalIndent(liked, "", "  ")
	if err == nil {
		return string(data)
	}

	slog.Warn("Failed to serialize enriched songs, using flat summary", "error", err)
	lines := make([]string, 0, len(liked))
	for _, song := range liked {
		lines = append(lines, fmt.Sprintf("- Title: %s, Artist: %s, Genres: %v, Lyrical Themes: %v",
			song.DisplayTitle(), song.DisplayArtist(), song.ArtistGenres, song.Themes()))
	}
	return strings.Join(lines, "\n")
}

// parseReply recovers the recommendation list from the raw LLM reply: strip a
// markdown fence, parse as JSON, accept a bare array, or accept an object with
// exactly one list-valued field. Anything else is unrecoverable.
func parseReply(reply string) ([]models.Recommendation, error) {
	content := stripCodeFence(reply)
	if content == "" {
		return []models.Recommendation{}, nil
	}

	var recs []models.Recommendation
	if err := json.Unmarshal([]byte(content), &recs); err == nil {
		return recs, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	var listField json.RawMessage
	listCount := 0
	for _, raw := range wrapper {
		trimmed := strings.TrimSpace(string(raw))
		if strings.HasPrefix(trimmed, "[") {
			listField = raw
			listCount++
		}
	}
	if listCount != 1 {
		return nil, fmt.Errorf("%w: object has %d list-valued fields", ErrMalformedReply, listCount)
	}

	if err := json.Unmarshal(listField, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return recs, nil
}

// filterLiked drops recommendations that duplicate a liked song, comparing
// case-insensitive title and artist against both the raw query and the
// catalog's canonical naming
func filterLiked(recs []models.Recommendation, liked []*models.EnrichedSong) []models.Recommendation {
	known := make(map[string]struct{}, len(liked)*2)
	for _, song := range liked {
		known[song.Query.NormalizedKey()] = struct{}{}
		known[models.SongQuery{Title: song.DisplayTitle(), Artist: song.DisplayArtist()}.NormalizedKey()] = struct{}{}
	}

	kept := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		if _, dup := known[rec.NormalizedKey()]; dup {
			slog.Debug("Dropping recommendation that duplicates a liked song",
				"title", rec.Title, "artist", rec.Artist)
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func stripCodeFence(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
