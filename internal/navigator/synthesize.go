package navigator

import (
	"context"

	"github.com/dgallion1/docnav/internal/oracle"
)

// NotFoundAnswer is returned when no chunk was ever selected. The oracle is
// not asked to synthesize in that case.
const NotFoundAnswer = "I couldn't find relevant information to answer this question in the document."

// synthesize expands the final frontier to full text and asks the oracle for
// the answer. Citations that do not resolve to a frontier passage are
// dropped.
func (n *Navigator) synthesize(ctx context.Context, text, question string, depth int, pad []ScratchpadEntry, frontier []navChunk) (*Result, error) {
	if len(frontier) == 0 {
		n.log.Info("no chunks selected, skipping synthesis")
		return &Result{
			Answer:     NotFoundAnswer,
			Citations:  []string{},
			Scratchpad: pad,
			Depth:      depth,
		}, nil
	}

	passages := make([]oracle.Passage, len(frontier))
	for i, nc := range frontier {
		passages[i] = oracle.Passage{Path: nc.path, Text: nc.chunk.Text(text)}
	}

	syn, err := n.oracle.Synthesize(ctx, oracle.SynthesisRequest{
		Question:   question,
		Scratchpad: renderScratchpad(pad),
		Passages:   passages,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, n.fail(KindOracleUnavailable, depth, pad, err)
	}

	citations := filterCitations(syn.Citations, passages)
	if dropped := len(syn.Citations) - len(citations); dropped > 0 {
		n.log.Warn("dropped duplicate or unmatched citations",
			"dropped", dropped, "kept", len(citations))
	}
	pad = append(pad, ScratchpadEntry{
		Stage:      StageSynthesis,
		Depth:      depth,
		Candidates: passagePaths(passages),
		Selected:   citations,
		Rationale:  syn.Rationale,
	})
	n.log.Info("synthesis complete",
		"passages", len(passages), "citations", len(citations), "depth", depth)

	return &Result{
		Answer:     syn.Answer,
		Citations:  citations,
		Passages:   passages,
		Scratchpad: pad,
		Depth:      depth,
	}, nil
}

// filterCitations keeps citations that name a passage, deduplicated, in the
// order the answer cited them.
func filterCitations(cited []string, passages []oracle.Passage) []string {
	valid := make(map[string]bool, len(passages))
	for _, p := range passages {
		valid[p.Path] = true
	}
	out := make([]string, 0, len(cited))
	for _, c := range cited {
		if valid[c] {
			out = append(out, c)
			valid[c] = false
		}
	}
	return out
}

func passagePaths(passages []oracle.Passage) []string {
	out := make([]string, len(passages))
	for i, p := range passages {
		out[i] = p.Path
	}
	return out
}
