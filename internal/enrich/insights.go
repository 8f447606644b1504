package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tunesage/internal/llm"
	"tunesage/internal/models"
)

const basicInsightsSystemPrompt = `You are an expert music analyst. Analyze the provided song lyrics.

Identify the main themes, distinct sentiments expressed (and if possible, link them to themes or parts of the song), and a list of 5-7 significant keywords or concepts.

Provide your output STRICTLY in the following JSON format, with no other text before or after the JSON block:

{
  "themes": ["theme1", "theme2", ...],
  "sentiments": [
    {"sentiment_type": "e.g., joyful", "description": "Expressed in the chorus regarding theme X"},
    {"sentiment_type": "e.g., melancholic", "description": "Throughout the verses reflecting on theme Y"}
  ],
  "keywords": ["keyword1", "keyword2", ...],
  "overall_summary": "A brief one or two sentence summary of the song's lyrical content."
}

Ensure all string values within the JSON are properly escaped.`

// Analyzer sends lyrics to the LLM capability and parses the structured
// insight replies. Both variants fail closed: a malformed reply yields no
// insight at all, never a partially populated one.
type Analyzer struct {
	llm        llm.Client
	basicModel string
	richModel  string
	timeout    time.Duration
}

// NewAnalyzer creates a lyrical-insight analyzer. The client may be nil, in
// which case every analysis reports AnalysisNotAttempted.
func NewAnalyzer(client llm.Client, basicModel, richModel string, timeout time.Duration) *Analyzer {
	return &Analyzer{
		llm:        client,
		basicModel: basicModel,
		richModel:  richModel,
		timeout:    timeout,
	}
}

// AnalyzeBasic extracts themes, sentiments, and keywords from lyrics.
// Empty lyrics short-circuit to the sentinel without calling the LLM.
func (a *Analyzer) AnalyzeBasic(ctx context.Context, lyricsText, title, artist string) (*models.BasicInsights, models.AnalysisState) {
	if a == nil || a.llm == nil {
		return nil, models.AnalysisNotAttempted
	}

	if strings.TrimSpace(lyricsText) == "" {
		slog.Debug("Lyrics empty, skipping basic analysis", "title", title)
		return models.EmptyLyricsInsights(), models.AnalysisSkippedEmpty
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.llm.Complete(callCtx, llm.Request{
		Model:        a.basicModel,
		SystemPrompt: basicInsightsSystemPrompt,
		UserPrompt:   "Here are the lyrics:\n\n" + lyricsText,
		Temperature:  0.5,
		MaxTokens:    500,
		JSONMode:     true,
	})
	if err != nil {
		slog.Warn("Basic lyrical analysis failed", "title", title, "artist", artist, "error", err)
		return nil, models.AnalysisFailed
	}

	var insights models.BasicInsights
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &insights); err != nil {
		slog.Warn("Basic lyrical analysis returned malformed JSON", "title", title, "error", err)
		return nil, models.AnalysisFailed
	}

	return &insights, models.AnalysisSucceeded
}

// AnalyzeRich performs the deep lyrical analysis with the larger model.
// Empty lyrics short-circuit to a structurally-complete-but-empty sentinel.
func (a *Analyzer) AnalyzeRich(ctx context.Context, lyricsText, title, artist string) (*models.RichInsights, models.AnalysisState) {
	if a == nil || a.llm == nil {
		return nil, models.AnalysisNotAttempted
	}

	if strings.TrimSpace(lyricsText) == "" {
		slog.Debug("Lyrics empty, skipping rich analysis", "title", title)
		return models.EmptyLyricsRichInsights(title, artist, a.richModel), models.AnalysisSkippedEmpty
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.llm.Complete(callCtx, llm.Request{
		Model:        a.richModel,
		SystemPrompt: richInsightsSystemPrompt(title, artist, a.richModel),
		UserPrompt:   fmt.Sprintf("Please analyze the following lyrics for the song '%s' by '%s':\n\n%s", title, artist, lyricsText),
		Temperature:  0.4,
		MaxTokens:    3500,
		JSONMode:     true,
	})
	if err != nil {
		slog.Warn("Rich lyrical analysis failed", "title", title, "artist", artist, "error", err)
		return nil, models.AnalysisFailed
	}

	var insights models.RichInsights
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &insights); err != nil {
		slog.Warn("Rich lyrical analysis returned malformed JSON", "title", title, "error", err)
		return nil, models.AnalysisFailed
	}

	return &insights, models.AnalysisSucceeded
}

func richInsightsSystemPrompt(title, artist, model string) string {
	return fmt.Sprintf(`You are a highly sophisticated musicologist and literary analyst. Your task is to perform an in-depth analysis of the provided song lyrics for '%[1]s' by '%[2]s'.

Provide your output STRICTLY in the following JSON format. Ensure all string values are properly escaped. Do not include any text before or after the JSON block itself.

JSON Structure:
{
  "song_title": "%[1]s",
  "artist_name": "%[2]s",
  "analysis_model": "%[3]s",
  "overall_interpretation": "(string) A paragraph summarizing the main message or interpretation of the song.",
  "concise_summary": "(string) A very brief 1-2 sentence factual summary of the lyrical content.",
  "detailed_breakdown": {
    "themes_and_concepts": [
      {"theme": "(string)", "description": "(string)", "related_keywords": ["(list of strings)"]}
    ],
    "narrative_structure": {"type": "(string)", "description": "(string)"},
    "emotions_and_sentiments": [
      {"emotion": "(string)", "intensity": "(string)", "lyrical_evidence": "(string)", "progression_note": "(string, optional)"}
    ],
    "imagery_and_symbols": [
      {"image_or_symbol": "(string)", "description": "(string)", "type": "(string)"}
    ],
    "literary_devices": [
      {"device": "(string)", "example_lyrics": "(string)", "explanation": "(string)"}
    ],
    "lyrical_style_and_tone": {
      "style_descriptors": ["(list of strings)"],
      "tone_descriptors": ["(list of strings)"],
      "overall_description": "(string)"
    },
    "cultural_social_historical_references": [
      {"reference_type": "(string)", "details": "(string)"}
    ],
    "key_phrases_or_lines": [
      {"phrase": "(string)", "significance": "(string)"}
    ]
  },
  "llm_confidence_notes": "(string, optional) Notes about ambiguities, multiple interpretations, or confidence levels."
}

Include 2-4 major themes, 2-5 distinct emotions, 3-5 significant images or symbols, 2-4 notable literary devices, and 2-3 key phrases.`, title, artist, model)
}

// stripCodeFence removes a surrounding markdown code fence from an LLM reply
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
