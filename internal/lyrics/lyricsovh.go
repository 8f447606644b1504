package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const lyricsOVHAPIURL = "https://api.lyrics.ovh/v1"

// lyricsOVHProvider fetches lyrics from the keyless LyricsOVH API. Used as a
// fallback when Genius is unconfigured or misses.
type lyricsOVHProvider struct {
	client *resty.Client
}

// NewLyricsOVHProvider creates a LyricsOVH-backed lyrics provider
func NewLyricsOVHProvider(timeout time.Duration) Provider {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(4 * time.Second)

	return &lyricsOVHProvider{client: client}
}

func (l *lyricsOVHProvider) Name() string {
	return "lyricsovh"
}

type lyricsOVHResponse struct {
	Lyrics string `json:"lyrics"`
	Error  string `json:"error"`
}

// FetchLyrics retrieves lyrics by artist and title
func (l *lyricsOVHProvider) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	var result lyricsOVHResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetResult(&result).
		SetError(&result).
		Get(fmt.Sprintf("%s/%s/%s",
			lyricsOVHAPIURL,
			url.PathEscape(strings.TrimSpace(artist)),
			url.PathEscape(strings.TrimSpace(title))))

	if err != nil {
		return "", &ProviderError{
			Provider:  "lyricsovh",
			Operation: "fetch",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() == http.StatusNotFound {
		return "", ErrNotFound
	}

	if resp.StatusCode() != http.StatusOK {
		return "", &ProviderError{
			Provider:  "lyricsovh",
			Operation: "fetch",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	lyricsText := strings.TrimSpace(result.Lyrics)
	if lyricsText == "" {
		return "", ErrNotFound
	}
	return lyricsText, nil
}
