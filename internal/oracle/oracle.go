package oracle

import "context"

// Candidate is one chunk offered for routing. Path doubles as the label the
// model selects by, so it must be unique within a request.
type Candidate struct {
	Path    string // Dotted lineage, e.g. "3.1".
	Preview string // Sampled slice of the chunk text.
	Tokens  int    // Estimated size of the full chunk.
}

// RouteRequest asks which candidates could hold the answer to a question.
type RouteRequest struct {
	Question   string
	Depth      int
	Scratchpad string // Accumulated reasoning from shallower depths.
	Candidates []Candidate
}

// RouteDecision is the model's verdict for one depth.
type RouteDecision struct {
	SelectedPaths []string // Labels picked from the candidates.
	NoneRelevant  bool     // Explicit signal that nothing on offer helps.
	Rationale     string   // Reasoning to append to the scratchpad.
}

// Passage is a fully expanded chunk handed to synthesis.
type Passage struct {
	Path string
	Text string
}

// SynthesisRequest asks for a final answer over the retrieved passages.
type SynthesisRequest struct {
	Question   string
	Scratchpad string
	Passages   []Passage
}

// Synthesis is the final answer with citations into the passage paths.
type Synthesis struct {
	Answer    string
	Citations []string
	Rationale string // Reasoning behind the answer, recorded like routing reasoning.
}

// Oracle makes the two judgment calls navigation needs: narrowing a frontier
// of chunks and writing the final answer. Implementations wrap an LLM API and
// must be safe for concurrent use.
type Oracle interface {
	Route(ctx context.Context, req RouteRequest) (RouteDecision, error)
	Synthesize(ctx context.Context, req SynthesisRequest) (Synthesis, error)
}
