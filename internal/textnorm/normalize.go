// Package textnorm cleans noisy track titles for use as lookup keys against
// catalog and lyrics providers.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	parenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	bracketed     = regexp.MustCompile(`\s*\[[^\]]*\]\s*`)

	// Trailing suffix patterns, longest/most-specific first so that
	// "- Remastered 2011" is not left half-stripped by "- Remastered"
	suffixPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*-\s*Remastered\s*\d{4}\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Remastered\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Radio\s*Edit\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Album\s*Version\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Single\s*Version\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Live\s*Version\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Live\s+At\s+.*$`),
		regexp.MustCompile(`(?i)\s*-\s*Live\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Acoustic\s*Version\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Acoustic\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Explicit\s*Version\s*$`),
		regexp.MustCompile(`(?i)\s*-\s*Explicit\s*$`),
	}
)

// NormalizeTitle removes bracketed annotations and known edition suffixes
// from a track title. It never fails; callers should fall back to the raw
// title when the result is empty.
func NormalizeTitle(raw string) string {
	cleaned := parenthetical.ReplaceAllString(raw, " ")
	cleaned = bracketed.ReplaceAllString(cleaned, " ")

	for _, pattern := range suffixPatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, "-")
	return strings.TrimSpace(cleaned)
}

// NormalizeTitleOrRaw applies NormalizeTitle and falls back to the raw input
// when cleaning removed everything
func NormalizeTitleOrRaw(raw string) string {
	if cleaned := NormalizeTitle(raw); cleaned != "" {
		return cleaned
	}
	return raw
}
