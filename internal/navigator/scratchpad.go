package navigator

import (
	"fmt"
	"strings"
)

// Stages of a run that write scratchpad entries.
const (
	StageRouting   = "routing"
	StageSynthesis = "synthesis"
)

// ScratchpadEntry records one oracle call: what was on offer, what was
// chosen, and the model's reasoning. Routing entries are quoted back to the
// oracle at deeper passes so later decisions can build on earlier ones.
type ScratchpadEntry struct {
	Stage      string   `json:"stage"`
	Depth      int      `json:"depth"`
	Candidates []string `json:"candidate_ids"`
	Selected   []string `json:"selected_ids,omitempty"`
	Rationale  string   `json:"rationale"`
}

// String renders the entry the way prompts and responses show it.
func (e ScratchpadEntry) String() string {
	if e.Stage == StageSynthesis {
		return "SYNTHESIS REASONING:\n" + e.Rationale
	}
	return fmt.Sprintf("DEPTH %d REASONING:\n%s", e.Depth, e.Rationale)
}

func renderScratchpad(entries []ScratchpadEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n\n")
}
