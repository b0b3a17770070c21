package services

import "strings"

// Tokenize splits free text into tokens on whitespace. No stemming, no
// case folding: the ranking stage scores raw tokens and the explanation
// path lower-cases on its own. Deterministic and pure; an empty or
// all-whitespace string yields an empty slice.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// CleanText collapses blank lines and trims each remaining line. Used on
// extracted resume text before it is stored.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
