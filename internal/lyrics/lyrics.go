// Package lyrics retrieves and cleans song lyrics from third-party providers.
package lyrics

import (
	"context"
	"errors"
)

// ErrNotFound indicates the provider was reached but has no lyrics for the
// song. Distinct from transport failures so callers can decide whether a
// retry could ever help.
var ErrNotFound = errors.New("lyrics not found")

// Provider fetches raw lyrics for a song. Implementations return ErrNotFound
// for a clean miss and a ProviderError for transport or API failures.
type Provider interface {
	// Name returns the provider name for logging
	Name() string

	// FetchLyrics retrieves raw (uncleaned) lyrics text
	FetchLyrics(ctx context.Context, title, artist string) (string, error)
}

// ProviderError represents a lyrics provider operation failure
type ProviderError struct {
	Provider  string
	Operation string
	Message   string
	Err       error
}

func (e *ProviderError) Error() string {
	msg := e.Provider + " " + e.Operation + " failed: " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
