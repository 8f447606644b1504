// Package enrich builds enriched song records by composing the catalog,
// lyrics, and LLM capabilities. Every stage is fail-soft: a collaborator
// failure leaves its field absent and the record still flows downstream.
package enrich

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tunesage/internal/cache"
	"tunesage/internal/lyrics"
	"tunesage/internal/models"
	"tunesage/internal/services"
	"tunesage/internal/textnorm"
)

const lyricsCacheTTL = 7 * 24 * time.Hour

// Orchestrator runs the per-song enrichment pipeline: catalog identification,
// artist genres, lyrics retrieval and cleaning, and basic lyrical analysis.
type Orchestrator struct {
	catalog        services.CatalogService
	lyrics         lyrics.Provider
	analyzer       *Analyzer
	augmenter      *Augmenter
	cache          cache.Cache
	catalogTimeout time.Duration
	lyricsTimeout  time.Duration
	concurrency    int
}

// NewOrchestrator wires the enrichment pipeline. The lyrics provider,
// analyzer, augmenter, and cache may each be nil; the corresponding stage is
// skipped and its field stays absent.
func NewOrchestrator(
	catalog services.CatalogService,
	lyricsProvider lyrics.Provider,
	analyzer *Analyzer,
	augmenter *Augmenter,
	cacheClient cache.Cache,
	catalogTimeout, lyricsTimeout time.Duration,
	concurrency int,
) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		catalog:        catalog,
		lyrics:         lyricsProvider,
		analyzer:       analyzer,
		augmenter:      augmenter,
		cache:          cacheClient,
		catalogTimeout: catalogTimeout,
		lyricsTimeout:  lyricsTimeout,
		concurrency:    concurrency,
	}
}

// Enrich builds an enriched record for one liked song. It never returns an
// error; a record is always produced, however sparse.
func (o *Orchestrator) Enrich(ctx context.Context, q models.SongQuery) *models.EnrichedSong {
	song := models.NewEnrichedSong(q)

	track := o.identify(ctx, q)
	if track == nil {
		slog.Info("Song not identified in catalog, continuing with query data only",
			"title", q.Title, "artist", q.Artist)
		return song
	}
	song.CatalogMatch = track.ToCatalogMatch()

	song.ArtistGenres = o.artistGenres(ctx, track)

	if text := o.fetchLyrics(ctx, song); text != "" {
		song.Lyrics = text
		if o.analyzer != nil {
			song.LyricalInsights, song.InsightsState = o.analyzer.AnalyzeBasic(ctx, song.Lyrics, song.DisplayTitle(), song.DisplayArtist())
		}
	}

	return song
}

// EnrichAll enriches a batch of liked songs with a bounded worker fan-out.
// Results keep the input order.
func (o *Orchestrator) EnrichAll(ctx context.Context, queries []models.SongQuery) []*models.EnrichedSong {
	songs := make([]*models.EnrichedSong, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			songs[i] = o.Enrich(gctx, q)
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes
	_ = g.Wait()

	return songs
}

// DeepEnrichAll augments identified songs with inferred attributes and runs
// the rich lyrical analysis. Unidentified songs are left untouched.
func (o *Orchestrator) DeepEnrichAll(ctx context.Context, songs []*models.EnrichedSong) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, song := range songs {
		if !song.Identified() {
			continue
		}
		song := song
		g.Go(func() error {
			o.augmenter.Augment(gctx, song)
			if o.analyzer != nil && song.Lyrics != "" {
				song.RichAnalysis, song.RichAnalysisState = o.analyzer.AnalyzeRich(gctx, song.Lyrics, song.DisplayTitle(), song.DisplayArtist())
			}
			return nil
		})
	}
	_ = g.Wait()
}

// identify searches the catalog with the cleaned title. Any failure, miss or
// transport, yields nil.
func (o *Orchestrator) identify(ctx context.Context, q models.SongQuery) *services.TrackInfo {
	if o.catalog == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()

	track, err := o.catalog.SearchTrack(callCtx, services.SearchQuery{
		Title:  textnorm.NormalizeTitleOrRaw(q.Title),
		Artist: q.Artist,
	})
	if err != nil {
		if !errors.Is(err, services.ErrNoMatch) {
			slog.Warn("Catalog search failed", "title", q.Title, "artist", q.Artist, "error", err)
		}
		return nil
	}
	return track
}

func (o *Orchestrator) artistGenres(ctx context.Context, track *services.TrackInfo) []string {
	artistID := track.PrimaryArtistID()
	if artistID == "" {
		return []string{}
	}

	callCtx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()

	genres, err := o.catalog.GetArtistGenres(callCtx, artistID)
	if err != nil {
		slog.Warn("Artist genre lookup failed", "artist_id", artistID, "error", err)
		return []string{}
	}
	if genres == nil {
		return []string{}
	}
	return genres
}

// fetchLyrics retrieves and cleans lyrics using the canonical title and the
// primary credited artist only. Returns empty on any miss or failure.
func (o *Orchestrator) fetchLyrics(ctx context.Context, song *models.EnrichedSong) string {
	if o.lyrics == nil {
		return ""
	}

	title := textnorm.NormalizeTitleOrRaw(song.DisplayTitle())
	artist := song.DisplayArtist()

	cacheKey := lyricsCacheKey(title, artist)
	if o.cache != nil {
		if cached, err := o.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			slog.Debug("Lyrics cache hit", "title", title, "artist", artist)
			return string(cached)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, o.lyricsTimeout)
	defer cancel()

	raw, err := o.lyrics.FetchLyrics(callCtx, title, artist)
	if err != nil {
		if errors.Is(err, lyrics.ErrNotFound) {
			slog.Info("Lyrics not found", "title", title, "artist", artist)
		} else {
			slog.Warn("Lyrics retrieval failed", "title", title, "artist", artist, "error", err)
		}
		return ""
	}

	cleaned := lyrics.Clean(raw, title, artist)
	if cleaned == "" {
		slog.Info("Lyrics empty after cleaning", "title", title, "artist", artist)
		return ""
	}

	if o.cache != nil {
		if err := o.cache.Set(ctx, cacheKey, []byte(cleaned), lyricsCacheTTL); err != nil {
			slog.Warn("Failed to cache lyrics", "key", cacheKey, "error", err)
		}
	}

	return cleaned
}

func lyricsCacheKey(title, artist string) string {
	return "lyrics:" + strings.ToLower(artist) + ":" + strings.ToLower(title)
}
