package chunker

import "strings"

// EstimateTokens approximates the token count of text from its word count,
// at the usual 4/3 tokens per English word. Chunking needs relative sizes,
// not exact tokenization.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	tokens := int(float64(words) * 1.33)
	if tokens < 1 && len(text) > 0 {
		tokens = 1
	}
	return tokens
}

// CountWords reports the whitespace-delimited word count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
