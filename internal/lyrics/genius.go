package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const geniusAPIURL = "https://api.genius.com"

// geniusProvider fetches lyrics through the Genius search API. Genius does
// not serve lyrics through its API, so the song page is fetched and the
// lyrics containers are extracted from the HTML.
type geniusProvider struct {
	client      *resty.Client
	accessToken string
}

// NewGeniusProvider creates a Genius-backed lyrics provider
func NewGeniusProvider(accessToken string, timeout time.Duration) Provider {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &geniusProvider{
		client:      client,
		accessToken: accessToken,
	}
}

func (g *geniusProvider) Name() string {
	return "genius"
}

// Genius API response structures
type geniusSearchResult struct {
	Response struct {
		Hits []struct {
			Type   string `json:"type"`
			Result struct {
				ID            int    `json:"id"`
				Title         string `json:"title"`
				URL           string `json:"url"`
				PrimaryArtist struct {
					Name string `json:"name"`
				} `json:"primary_artist"`
			} `json:"result"`
		} `json:"hits"`
	} `json:"response"`
}

// FetchLyrics searches Genius for the song and scrapes the lyrics page
func (g *geniusProvider) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	var searchResult geniusSearchResult
	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.accessToken).
		SetQueryParam("q", fmt.Sprintf("%s %s", title, artist)).
		SetResult(&searchResult).
		Get(geniusAPIURL + "/search")

	if err != nil {
		return "", &ProviderError{
			Provider:  "genius",
			Operation: "search",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return "", &ProviderError{
			Provider:  "genius",
			Operation: "search",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	pageURL := g.pickHit(&searchResult, artist)
	if pageURL == "" {
		return "", ErrNotFound
	}

	return g.fetchSongPage(ctx, pageURL)
}

// pickHit selects the best song hit, preferring ones whose primary artist
// matches the requested artist
func (g *geniusProvider) pickHit(result *geniusSearchResult, artist string) string {
	wanted := strings.ToLower(strings.TrimSpace(artist))

	var fallback string
	for _, hit := range result.Response.Hits {
		if hit.Type != "song" || hit.Result.URL == "" {
			continue
		}
		if fallback == "" {
			fallback = hit.Result.URL
		}
		if strings.Contains(strings.ToLower(hit.Result.PrimaryArtist.Name), wanted) {
			return hit.Result.URL
		}
	}
	return fallback
}

var (
	lyricsContainer = regexp.MustCompile(`(?s)<div[^>]+data-lyrics-container="true"[^>]*>(.*?)</div>`)
	lineBreak       = regexp.MustCompile(`<br\s*/?>`)
	htmlTag         = regexp.MustCompile(`<[^>]+>`)
)

// fetchSongPage downloads a Genius song page and extracts the lyrics text
func (g *geniusProvider) fetchSongPage(ctx context.Context, pageURL string) (string, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		Get(pageURL)

	if err != nil {
		return "", &ProviderError{
			Provider:  "genius",
			Operation: "fetch_page",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		return "", &ProviderError{
			Provider:  "genius",
			Operation: "fetch_page",
			Message:   fmt.Sprintf("page returned status %d", resp.StatusCode()),
		}
	}

	containers := lyricsContainer.FindAllStringSubmatch(string(resp.Body()), -1)
	if len(containers) == 0 {
		return "", ErrNotFound
	}

	var sb strings.Builder
	for _, match := range containers {
		text := lineBreak.ReplaceAllString(match[1], "\n")
		text = htmlTag.ReplaceAllString(text, "")
		sb.WriteString(unescapeHTML(text))
		sb.WriteString("\n")
	}

	lyricsText := strings.TrimSpace(sb.String())
	if lyricsText == "" {
		return "", ErrNotFound
	}
	return lyricsText, nil
}

var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#x27;", "'",
	"&#39;", "'",
	"&nbsp;", " ",
)

func unescapeHTML(s string) string {
	return htmlEntities.Replace(s)
}
