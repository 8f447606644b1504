package lyrics

import (
	"context"
	"errors"
	"log/slog"
)

// Chain consults providers in order and returns the first hit. A provider
// miss or failure moves on to the next; the chain only fails when every
// provider has failed.
type Chain struct {
	providers []Provider
}

// NewChain creates a provider chain. Nil providers are skipped.
func NewChain(providers ...Provider) *Chain {
	chain := &Chain{}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

func (c *Chain) Name() string {
	return "chain"
}

// FetchLyrics tries each provider in order. Returns ErrNotFound when every
// provider reported a clean miss, or the last transport error otherwise.
func (c *Chain) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	if len(c.providers) == 0 {
		return "", ErrNotFound
	}

	lastErr := error(ErrNotFound)
	for _, provider := range c.providers {
		text, err := provider.FetchLyrics(ctx, title, artist)
		if err == nil {
			return text, nil
		}

		if errors.Is(err, ErrNotFound) {
			slog.Debug("Lyrics provider miss",
				"provider", provider.Name(),
				"title", title,
				"artist", artist)
		} else {
			slog.Warn("Lyrics provider failed",
				"provider", provider.Name(),
				"title", title,
				"artist", artist,
				"error", err)
			lastErr = err
		}
	}

	return "", lastErr
}
