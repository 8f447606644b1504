package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"remastered year suffix", "Hey Jude - Remastered 2015", "Hey Jude"},
		{"remastered suffix", "Hey Jude - Remastered", "Hey Jude"},
		{"parenthetical", "Imagine (Ultimate Mix)", "Imagine"},
		{"bracketed", "Imagine [2020 Mix]", "Imagine"},
		{"radio edit", "Blinding Lights - Radio Edit", "Blinding Lights"},
		{"album version", "Layla - Album Version", "Layla"},
		{"single version", "Layla - Single Version", "Layla"},
		{"live version", "Alive - Live Version", "Alive"},
		{"live at", "One - Live At Wembley 1992", "One"},
		{"live", "One - Live", "One"},
		{"acoustic version", "Layla - Acoustic Version", "Layla"},
		{"acoustic", "Layla - Acoustic", "Layla"},
		{"explicit version", "Forgot About Dre - Explicit Version", "Forgot About Dre"},
		{"explicit", "Forgot About Dre - Explicit", "Forgot About Dre"},
		{"combined", "Wish You Were Here (2011 Remaster) - Live", "Wish You Were Here"},
		{"interior parenthetical", "Time (Is on My Side) Tonight", "Time Tonight"},
		{"clean title untouched", "Bohemian Rhapsody", "Bohemian Rhapsody"},
		{"whitespace trimmed", "  Hey Jude  ", "Hey Jude"},
		{"all removed", "(Live)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTitle(tt.input))
		})
	}
}

func TestNormalizeTitle_Idempotent(t *testing.T) {
	inputs := []string{
		"Hey Jude - Remastered 2015",
		"Imagine (Ultimate Mix)",
		"One - Live At Wembley",
		"Bohemian Rhapsody",
	}

	for _, input := range inputs {
		once := NormalizeTitle(input)
		assert.Equal(t, once, NormalizeTitle(once), "normalizing %q twice changed the result", input)
	}
}

func TestNormalizeTitleOrRaw(t *testing.T) {
	assert.Equal(t, "Hey Jude", NormalizeTitleOrRaw("Hey Jude - Remastered 2015"))

	// Fully-cleaned titles fall back to the raw input
	assert.Equal(t, "(Live)", NormalizeTitleOrRaw("(Live)"))
}
