package document

import "github.com/dgallion1/docnav/internal/chunker"

// Document is the text a single navigation run works over. It is built once
// per question and never mutated afterwards.
type Document struct {
	Text   string // Extracted plain text
	Tokens int    // Estimated token count of Text
}

// New wraps extracted text with its precomputed token count.
func New(text string) *Document {
	return &Document{
		Text:   text,
		Tokens: chunker.EstimateTokens(text),
	}
}

// Stats is upload-time bookkeeping reported alongside document metadata.
type Stats struct {
	Words     int `json:"word_count"`
	Sentences int `json:"sentence_count"`
	Tokens    int `json:"token_count"`
}

// ComputeStats derives word/sentence/token counts from extracted text.
// It is a pure function of the text and needs no other state.
func ComputeStats(text string) Stats {
	return Stats{
		Words:     chunker.CountWords(text),
		Sentences: len(chunker.SplitSentences(text)),
		Tokens:    chunker.EstimateTokens(text),
	}
}
