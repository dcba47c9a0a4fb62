package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/docnav/internal/chunker"
	"github.com/dgallion1/docnav/internal/document"
	"github.com/dgallion1/docnav/internal/oracle"
	"golang.org/x/sync/errgroup"
)

// Config bounds a navigation run.
type Config struct {
	Chunk         chunker.Config // First pass over the whole document.
	SubChunk      chunker.Config // Re-splitting one selected chunk during descent.
	PreviewTokens int            // Preview budget per routing candidate.
	MaxDepth      int            // Ceiling on caller-requested depth.
}

// DefaultConfig returns the production navigation bounds.
func DefaultConfig() Config {
	return Config{
		Chunk:         chunker.DefaultConfig(),
		SubChunk:      chunker.SubConfig(),
		PreviewTokens: 900,
		MaxDepth:      3,
	}
}

// Navigator answers questions about a document by descending a chunk
// hierarchy: at each depth it shows the oracle previews of the current
// frontier, keeps only what the oracle selects, and re-splits the survivors
// for the next depth. The full text of the final frontier is then handed to
// synthesis.
type Navigator struct {
	oracle oracle.Oracle
	cfg    Config
	log    *slog.Logger
}

// New creates a Navigator. Zero config fields fall back to defaults.
func New(o oracle.Oracle, cfg Config, log *slog.Logger) *Navigator {
	def := DefaultConfig()
	if cfg.Chunk.MinTokens <= 0 {
		cfg.Chunk = def.Chunk
	}
	if cfg.SubChunk.MinTokens <= 0 {
		cfg.SubChunk = def.SubChunk
	}
	if cfg.PreviewTokens <= 0 {
		cfg.PreviewTokens = def.PreviewTokens
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = def.MaxDepth
	}
	if log == nil {
		log = slog.Default()
	}
	return &Navigator{oracle: o, cfg: cfg, log: log}
}

// Result is a completed run: the synthesized answer plus the trail that
// produced it.
type Result struct {
	Answer     string
	Citations  []string         // Passage paths the answer cites, in citation order.
	Passages   []oracle.Passage // Final frontier handed to synthesis.
	Scratchpad []ScratchpadEntry
	Depth      int // Deepest level routed.
}

// navChunk pairs a chunk with its dotted lineage path, e.g. "3.1.2".
type navChunk struct {
	path  string
	chunk chunker.Chunk
}

// Run answers question over doc, descending at most maxDepth levels past the
// first chunking pass. It makes maxDepth+1 routing calls unless the oracle
// declares the frontier irrelevant earlier, then one synthesis call.
//
// maxDepth must be non-negative; values above the configured ceiling are
// clamped. Failures are reported as a *NavError carrying the scratchpad
// accumulated so far, except caller cancellation, which surfaces as the
// context's own error.
func (n *Navigator) Run(ctx context.Context, doc *document.Document, question string, maxDepth int) (*Result, error) {
	question = strings.TrimSpace(question)
	if doc == nil || strings.TrimSpace(doc.Text) == "" {
		return nil, &NavError{Kind: KindMalformedInput, Depth: -1, Err: errors.New("document text is empty")}
	}
	if question == "" {
		return nil, &NavError{Kind: KindMalformedInput, Depth: -1, Err: errors.New("question is empty")}
	}
	if maxDepth < 0 {
		return nil, &NavError{Kind: KindMalformedInput, Depth: -1, Err: fmt.Errorf("max depth %d is negative", maxDepth)}
	}
	if maxDepth > n.cfg.MaxDepth {
		n.log.Warn("max depth clamped", "requested", maxDepth, "limit", n.cfg.MaxDepth)
		maxDepth = n.cfg.MaxDepth
	}

	frontier := label("", chunker.Build(doc.Text, n.cfg.Chunk))
	if len(frontier) == 0 {
		return nil, &NavError{Kind: KindMalformedInput, Depth: -1, Err: errors.New("document has no sentences")}
	}
	n.log.Info("navigation started",
		"doc_tokens", doc.Tokens,
		"max_depth", maxDepth,
		"top_chunks", len(frontier))

	var pad []ScratchpadEntry
	var selected []navChunk
	depth := 0
	for ; ; depth++ {
		decision, err := n.route(ctx, doc.Text, question, depth, pad, frontier)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, n.fail(KindOracleUnavailable, depth, pad, err)
		}

		if decision.NoneRelevant {
			pad = append(pad, ScratchpadEntry{
				Stage:      StageRouting,
				Depth:      depth,
				Candidates: paths(frontier),
				Rationale:  decision.Rationale,
			})
			n.log.Info("nothing relevant at this depth, stopping early",
				"depth", depth, "kept_selection", len(selected))
			break
		}

		chosen, err := matchSelection(frontier, decision.SelectedPaths)
		if err != nil {
			return nil, n.fail(KindContractViolation, depth, pad, err)
		}
		if len(chosen) == 0 {
			return nil, n.fail(KindContractViolation, depth, pad,
				errors.New("empty selection without none_relevant"))
		}

		pad = append(pad, ScratchpadEntry{
			Stage:      StageRouting,
			Depth:      depth,
			Candidates: paths(frontier),
			Selected:   paths(chosen),
			Rationale:  decision.Rationale,
		})
		selected = chosen
		n.log.Info("frontier narrowed",
			"depth", depth, "candidates", len(frontier), "selected", len(chosen))

		if depth == maxDepth {
			break
		}
		frontier, err = n.descend(ctx, doc.Text, chosen)
		if err != nil {
			return nil, err
		}
	}

	return n.synthesize(ctx, doc.Text, question, depth, pad, selected)
}

// route shows the oracle previews of the frontier and returns its decision.
func (n *Navigator) route(ctx context.Context, text, question string, depth int, pad []ScratchpadEntry, frontier []navChunk) (oracle.RouteDecision, error) {
	cands := make([]oracle.Candidate, len(frontier))
	for i, nc := range frontier {
		cands[i] = oracle.Candidate{
			Path:    nc.path,
			Preview: oracle.Preview(nc.chunk.Text(text), n.cfg.PreviewTokens),
			Tokens:  nc.chunk.Tokens,
		}
	}
	return n.oracle.Route(ctx, oracle.RouteRequest{
		Question:   question,
		Depth:      depth,
		Scratchpad: renderScratchpad(pad),
		Candidates: cands,
	})
}

// descend re-splits each selected parent and concatenates the results in
// parent order. Parents are independent, so they are re-chunked in parallel.
// A parent too small to split again survives as its own single sub-chunk.
func (n *Navigator) descend(ctx context.Context, text string, parents []navChunk) ([]navChunk, error) {
	results := make([][]navChunk, len(parents))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range parents {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			subs := chunker.Rebuild(text, p.chunk.Start, p.chunk.End, n.cfg.SubChunk)
			results[i] = label(p.path+".", subs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []navChunk
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

// matchSelection maps selected paths back onto the frontier, preserving
// frontier order and deduplicating. A path not on offer fails the whole
// selection.
func matchSelection(frontier []navChunk, selected []string) ([]navChunk, error) {
	want := make(map[string]bool, len(selected))
	for _, p := range selected {
		want[p] = true
	}
	var out []navChunk
	for _, nc := range frontier {
		if want[nc.path] {
			out = append(out, nc)
			delete(want, nc.path)
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for p := range want {
			unknown = append(unknown, p)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("selected unknown chunk ids %v", unknown)
	}
	return out, nil
}

func (n *Navigator) fail(kind Kind, depth int, pad []ScratchpadEntry, err error) error {
	n.log.Error("navigation failed", "kind", string(kind), "depth", depth, "error", err)
	return &NavError{Kind: kind, Depth: depth, Scratchpad: pad, Err: err}
}

func label(prefix string, chunks []chunker.Chunk) []navChunk {
	out := make([]navChunk, len(chunks))
	for i, c := range chunks {
		out[i] = navChunk{path: prefix + strconv.Itoa(c.ID), chunk: c}
	}
	return out
}

func paths(chunks []navChunk) []string {
	out := make([]string, len(chunks))
	for i, nc := range chunks {
		out[i] = nc.path
	}
	return out
}
