package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func checkCover(t *testing.T, text string, spans []Span) {
	t.Helper()
	if len(spans) == 0 {
		if text != "" {
			t.Fatalf("expected spans for non-empty text")
		}
		return
	}
	if spans[0].Start != 0 {
		t.Errorf("first span starts at %d, want 0", spans[0].Start)
	}
	if spans[len(spans)-1].End != len(text) {
		t.Errorf("last span ends at %d, want %d", spans[len(spans)-1].End, len(text))
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].Start != spans[i-1].End {
			t.Errorf("span %d starts at %d, previous ends at %d", i, spans[i].Start, spans[i-1].End)
		}
	}
}

func TestSplitSentences_BasicBoundaries(t *testing.T) {
	text := "First one. Second one! Third?"
	spans := SplitSentences(text)

	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %v", len(spans), spans)
	}
	checkCover(t, text, spans)

	want := []string{"First one.", "Second one!", "Third?"}
	for i, w := range want {
		got := strings.TrimSpace(text[spans[i].Start:spans[i].End])
		if got != w {
			t.Errorf("span %d: expected %q, got %q", i, w, got)
		}
	}
}

func TestSplitSentences_AbbreviationsDoNotSplit(t *testing.T) {
	text := "Dr. Smith met Mr. Jones. They left."
	spans := SplitSentences(text)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	first := strings.TrimSpace(text[spans[0].Start:spans[0].End])
	if first != "Dr. Smith met Mr. Jones." {
		t.Errorf("unexpected first span: %q", first)
	}
}

func TestSplitSentences_InitialsDoNotSplit(t *testing.T) {
	text := "J. R. Tolkien wrote it, e.g. the trilogy. Everyone read it."
	spans := SplitSentences(text)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %v", len(spans), spans)
	}
}

func TestSplitSentences_NumberedListStaysTogether(t *testing.T) {
	text := "1. First item\n2. Second item"
	spans := SplitSentences(text)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span for a numbered list, got %d", len(spans))
	}
	checkCover(t, text, spans)
}

func TestSplitSentences_BlankLineEndsHeading(t *testing.T) {
	text := "Overview\n\nThe system works. It runs."
	spans := SplitSentences(text)

	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	checkCover(t, text, spans)
	if strings.TrimSpace(text[spans[0].Start:spans[0].End]) != "Overview" {
		t.Errorf("expected heading as its own span, got %q", text[spans[0].Start:spans[0].End])
	}
}

func TestSplitSentences_QuoteAfterTerminator(t *testing.T) {
	text := `He said "stop." Then he left.`
	spans := SplitSentences(text)

	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	second := strings.TrimSpace(text[spans[1].Start:spans[1].End])
	if second != "Then he left." {
		t.Errorf("unexpected second span: %q", second)
	}
}

func TestSplitSentences_CoversMessyInput(t *testing.T) {
	text := "  Leading space. Mid\tsentence here! A.B. check?\nSingle newline. Trailing words"
	spans := SplitSentences(text)
	checkCover(t, text, spans)

	// Whitespace after a terminator belongs to the sentence it follows.
	var rebuilt strings.Builder
	for _, sp := range spans {
		rebuilt.WriteString(text[sp.Start:sp.End])
	}
	if rebuilt.String() != text {
		t.Errorf("span union does not reproduce input")
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	if spans := SplitSentences(""); spans != nil {
		t.Errorf("expected nil for empty input, got %v", spans)
	}
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	text := "a fragment without any terminator at all"
	spans := SplitSentences(text)

	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Start != 0 || spans[0].End != len(text) {
		t.Errorf("expected full-text span, got %+v", spans[0])
	}
}

func TestSplitSentences_UTF8Safe(t *testing.T) {
	text := "Café résumé first. Naïve second — dashes too. Done."
	spans := SplitSentences(text)
	checkCover(t, text, spans)

	for i, sp := range spans {
		if !utf8.ValidString(text[sp.Start:sp.End]) {
			t.Errorf("span %d slices through a rune", i)
		}
	}
}
