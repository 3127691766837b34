package ingest

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase word tokens. Letters, digits, and
// interior hyphens are kept together so tokens like "gpt-4" or "utf-8"
// survive; everything else is a boundary. Matching against these tokens
// is therefore word-boundary safe: "api" never matches inside "rapid".
func Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			if current.Len() > 0 {
				if word := cleanToken(current.String()); word != "" {
					tokens = append(tokens, word)
				}
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		if word := cleanToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
	}

	return tokens
}

// cleanToken strips leading/trailing hyphens and collapses runs of hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-")

	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}

	return token
}

// WordCount counts whitespace-delimited tokens across the given paragraphs.
func WordCount(paragraphs ...string) int {
	total := 0
	for _, p := range paragraphs {
		total += len(strings.Fields(p))
	}
	return total
}
