package chunker

import (
	"strings"
	"testing"
)

// nineWords is one sentence of 9 words, ~11 tokens at the 1.33 estimate.
const nineWords = "The quick brown fox jumps over the lazy dog. "

func repeatSentences(n int) string {
	return strings.TrimSuffix(strings.Repeat(nineWords, n), " ")
}

func joinChunks(text string, chunks []Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text(text))
	}
	return b.String()
}

func TestBuild_ReconstructsInput(t *testing.T) {
	text := "Intro heading\n\n" + repeatSentences(40) + "\n\nClosing remark without period"
	chunks := Build(text, Config{MinTokens: 30, TargetCount: 20})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	if joinChunks(text, chunks) != text {
		t.Errorf("chunk spans do not reproduce the input text")
	}
	if chunks[0].Start != 0 {
		t.Errorf("first chunk starts at %d, want 0", chunks[0].Start)
	}
	if chunks[len(chunks)-1].End != len(text) {
		t.Errorf("last chunk ends at %d, want %d", chunks[len(chunks)-1].End, len(text))
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start != chunks[i-1].End {
			t.Errorf("chunk %d starts at %d, previous ends at %d", i, chunks[i].Start, chunks[i-1].End)
		}
	}
}

func TestBuild_SequentialIDs(t *testing.T) {
	chunks := Build(repeatSentences(50), Config{MinTokens: 30, TargetCount: 20})
	for i, c := range chunks {
		if c.ID != i {
			t.Errorf("chunk %d carries ID %d", i, c.ID)
		}
	}
}

func TestBuild_TokenBounds(t *testing.T) {
	min := 30
	chunks := Build(repeatSentences(60), Config{MinTokens: min, TargetCount: 0})

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Tokens > min*2 {
			t.Errorf("chunk %d holds %d tokens, ceiling is %d", i, c.Tokens, min*2)
		}
		if i < len(chunks)-1 && c.Tokens < min {
			t.Errorf("chunk %d holds %d tokens, floor is %d", i, c.Tokens, min)
		}
	}
}

func TestBuild_OversizedSentenceBecomesOneChunk(t *testing.T) {
	// 400 words with no terminator: a single sentence far past the ceiling.
	text := strings.TrimSpace(strings.Repeat("word ", 400))
	chunks := Build(text, Config{MinTokens: 50, TargetCount: 20})

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Tokens <= 100 {
		t.Errorf("expected an oversized chunk, got %d tokens", chunks[0].Tokens)
	}
}

func TestBuild_ShortTailAllowedUnderFloor(t *testing.T) {
	// Six 11-token sentences with min=30: five close at 55 tokens and the
	// sixth remains alone as a short final chunk.
	chunks := Build(repeatSentences(6), Config{MinTokens: 30, TargetCount: 0})

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	last := chunks[len(chunks)-1]
	if last.Tokens >= 30 {
		t.Errorf("expected short tail chunk, got %d tokens", last.Tokens)
	}
}

func TestBuild_ConsolidatesAboveTarget(t *testing.T) {
	// min=1 keeps chunks tiny, forcing far more than the target before the
	// even redeal kicks in.
	text := repeatSentences(100)
	chunks := Build(text, Config{MinTokens: 1, TargetCount: 20})

	if len(chunks) > 20 {
		t.Fatalf("expected at most 20 chunks, got %d", len(chunks))
	}
	if len(chunks) < 15 {
		t.Errorf("expected close to 20 chunks after redeal, got %d", len(chunks))
	}
	if joinChunks(text, chunks) != text {
		t.Errorf("consolidated chunks do not reproduce the input text")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	text := repeatSentences(80)
	cfg := Config{MinTokens: 40, TargetCount: 20}

	a := Build(text, cfg)
	b := Build(text, cfg)
	if len(a) != len(b) {
		t.Fatalf("runs disagree on count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRebuild_SubRangeStaysWithinParent(t *testing.T) {
	text := repeatSentences(120)
	parents := Build(text, Config{MinTokens: 100, TargetCount: 20})
	if len(parents) < 3 {
		t.Fatalf("expected several parent chunks, got %d", len(parents))
	}

	p := parents[1]
	subs := Rebuild(text, p.Start, p.End, Config{MinTokens: 20, TargetCount: 20})
	if len(subs) < 2 {
		t.Fatalf("expected parent to re-split, got %d chunks", len(subs))
	}
	if subs[0].Start != p.Start {
		t.Errorf("first sub-chunk starts at %d, parent at %d", subs[0].Start, p.Start)
	}
	if subs[len(subs)-1].End != p.End {
		t.Errorf("last sub-chunk ends at %d, parent at %d", subs[len(subs)-1].End, p.End)
	}
	for i, s := range subs {
		if s.Start < p.Start || s.End > p.End {
			t.Errorf("sub-chunk %d [%d,%d) escapes parent [%d,%d)", i, s.Start, s.End, p.Start, p.End)
		}
	}
	if joinChunks(text, subs) != text[p.Start:p.End] {
		t.Errorf("sub-chunks do not reproduce the parent span")
	}
}

func TestRebuild_EmptyAndOutOfRange(t *testing.T) {
	text := repeatSentences(3)

	if got := Rebuild(text, 5, 5, DefaultConfig()); got != nil {
		t.Errorf("expected nil for empty range, got %v", got)
	}
	if got := Rebuild("", 0, 0, DefaultConfig()); got != nil {
		t.Errorf("expected nil for empty text, got %v", got)
	}
	if got := Rebuild(text, -4, len(text)+9, Config{MinTokens: 10}); joinChunks(text, got) != text {
		t.Errorf("expected clamped range to cover the text")
	}
}

func TestBuild_ZeroConfigUsesDefaults(t *testing.T) {
	chunks := Build(repeatSentences(10), Config{})
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk under default floor, got %d", len(chunks))
	}
}

func TestEstimateTokens_Basics(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("empty text: expected 0 tokens, got %d", got)
	}
	if got := EstimateTokens("word"); got != 1 {
		t.Errorf("single word: expected 1 token, got %d", got)
	}
	if got := EstimateTokens(nineWords); got != 11 {
		t.Errorf("nine words: expected 11 tokens, got %d", got)
	}
}
