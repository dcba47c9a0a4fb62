package chunker

// Config controls one chunking pass.
type Config struct {
	MinTokens   int // Floor a chunk must reach before it may close.
	TargetCount int // Soft ceiling on chunks per pass; 0 disables consolidation.
}

// DefaultConfig returns the bounds used for a document's first pass.
func DefaultConfig() Config {
	return Config{
		MinTokens:   500,
		TargetCount: 20,
	}
}

// SubConfig returns the tighter bounds used when re-splitting one chunk
// during descent.
func SubConfig() Config {
	return Config{
		MinTokens:   200,
		TargetCount: 20,
	}
}

// Chunk is a contiguous, sentence-aligned slice of a document.
type Chunk struct {
	ID     int // Position within its sibling set, 0-based.
	Start  int // Byte offset into the full document text, inclusive.
	End    int // Byte offset, exclusive.
	Tokens int // Sum of the sentence token estimates inside the span.
}

// Text returns the chunk's slice of the document it was built from.
func (c Chunk) Text(doc string) string {
	return doc[c.Start:c.End]
}

// Build chunks an entire document text.
func Build(text string, cfg Config) []Chunk {
	return Rebuild(text, 0, len(text), cfg)
}

// Rebuild re-chunks the [lo, hi) span of text. Offsets in the result are
// absolute into text, so any produced chunk can itself be rebuilt without
// translating coordinates, and concatenating the spans of one pass yields
// the input span byte for byte.
//
// Chunks grow sentence by sentence and close once they hold at least
// cfg.MinTokens and the next sentence would push them past twice that. The
// trailing remainder becomes the final chunk even when it lands under the
// floor. A single sentence estimated over the ceiling still becomes part of
// exactly one chunk; sentences are never split. If the pass yields more than
// cfg.TargetCount chunks, the sentences are redealt into even consecutive
// runs so the count lands at or under the target.
func Rebuild(text string, lo, hi int, cfg Config) []Chunk {
	if cfg.MinTokens <= 0 {
		cfg.MinTokens = DefaultConfig().MinTokens
	}
	if lo < 0 {
		lo = 0
	}
	if hi > len(text) {
		hi = len(text)
	}
	if lo >= hi {
		return nil
	}

	sub := text[lo:hi]
	spans := SplitSentences(sub)
	if len(spans) == 0 {
		return nil
	}
	counts := make([]int, len(spans))
	for i, sp := range spans {
		counts[i] = EstimateTokens(sub[sp.Start:sp.End])
	}

	groups := accumulate(counts, cfg.MinTokens)
	if cfg.TargetCount > 0 && len(groups) > cfg.TargetCount {
		groups = divideEven(len(spans), cfg.TargetCount)
	}

	chunks := make([]Chunk, len(groups))
	for id, g := range groups {
		tokens := 0
		for i := g.lo; i <= g.hi; i++ {
			tokens += counts[i]
		}
		chunks[id] = Chunk{
			ID:     id,
			Start:  lo + spans[g.lo].Start,
			End:    lo + spans[g.hi].End,
			Tokens: tokens,
		}
	}
	return chunks
}

// group is a run of consecutive sentence indexes, both ends inclusive.
type group struct {
	lo, hi int
}

func accumulate(counts []int, minTokens int) []group {
	var groups []group
	start := 0
	cur := 0
	for i, n := range counts {
		if cur+n > minTokens*2 && cur >= minTokens {
			groups = append(groups, group{lo: start, hi: i - 1})
			start = i
			cur = 0
		}
		cur += n
	}
	return append(groups, group{lo: start, hi: len(counts) - 1})
}

// divideEven deals n sentences into at most target consecutive runs of equal
// length, ignoring token bounds entirely.
func divideEven(n, target int) []group {
	per := n / target
	if n%target != 0 {
		per++
	}
	var groups []group
	for i := 0; i < n; i += per {
		hi := i + per - 1
		if hi > n-1 {
			hi = n - 1
		}
		groups = append(groups, group{lo: i, hi: hi})
	}
	return groups
}
