package lyrics

import (
	"regexp"
	"strings"
)

var (
	sectionTag = regexp.MustCompile(`\[[^\]]*\]`)

	leadingSectionTag = regexp.MustCompile(`(?i)\[(intro|verse|chorus|bridge|outro|pre-chorus|hook|instrumental|refrain|interlude|skit|spoken word|guitar solo|solo)[^\]]*\]`)

	// Genius page boilerplate that survives HTML extraction
	boilerplatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)See .*? LiveGet tickets.*`),
		regexp.MustCompile(`(?is)\d*EmbedShare URLCopyEmbedCopy`),
		regexp.MustCompile(`(?i)\d*Embed$`),
		regexp.MustCompile(`(?i)You might also like`),
		regexp.MustCompile(`(?i)Translations.*`),
		regexp.MustCompile(`(?i)Source:.*`),
		regexp.MustCompile(`(?is)\d+ Contributors.*?Lyrics`),
	}

	blankRun = regexp.MustCompile(`\n{3,}`)
)

// Clean strips provider boilerplate, section tags, and noise from raw lyrics.
// Returns the empty string when nothing usable remains, which signals "no
// usable lyrics" as opposed to a fetch failure.
func Clean(raw, title, artist string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := dropHeaderLine(raw, title, artist)

	for _, pattern := range boilerplatePatterns {
		text = pattern.ReplaceAllString(text, "")
	}

	text = sectionTag.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	// At most one blank line between paragraphs
	text = blankRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// dropHeaderLine removes a leading line that just restates the song, either
// as "<title> [Verse]"-style headers or as a short "artist - title" repeat
func dropHeaderLine(text, title, artist string) string {
	lines := strings.SplitN(text, "\n", 2)
	if len(lines) < 2 {
		return text
	}

	first := strings.ToLower(lines[0])
	titleLower := strings.ToLower(title)
	artistLower := strings.ToLower(artist)

	titleInFirst := false
	for _, word := range strings.Fields(titleLower) {
		if len(word) > 2 && strings.Contains(first, word) {
			titleInFirst = true
			break
		}
	}

	if titleInFirst && leadingSectionTag.MatchString(first) {
		return lines[1]
	}

	if artistLower != "" && strings.Contains(first, artistLower) && strings.Contains(first, titleLower) &&
		len(lines[0]) < len(artist)+len(title)+10 {
		return lines[1]
	}

	return text
}
