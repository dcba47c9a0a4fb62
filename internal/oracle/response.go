package oracle

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// routePayload mirrors the JSON object the routing prompt demands.
type routePayload struct {
	Reasoning    string   `json:"reasoning"`
	ChunkIDs     []flexID `json:"chunk_ids"`
	NoneRelevant bool     `json:"none_relevant"`
}

type synthesisPayload struct {
	Reasoning string   `json:"reasoning"`
	Answer    string   `json:"answer"`
	Citations []flexID `json:"citations"`
}

// flexID accepts both quoted labels and bare numbers. Models drift between
// the two for top-level chunks, whose labels look like integers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexID(n.String())
		return nil
	}
	return fmt.Errorf("chunk id must be a string or number, got %s", string(b))
}

func decodeRoute(raw string) (RouteDecision, error) {
	var p routePayload
	if err := json.Unmarshal([]byte(stripCodeBlock(raw)), &p); err != nil {
		return RouteDecision{}, fmt.Errorf("parse routing json: %w (raw: %s)", err, truncate(raw, 200))
	}
	d := RouteDecision{
		NoneRelevant: p.NoneRelevant,
		Rationale:    strings.TrimSpace(p.Reasoning),
	}
	for _, id := range p.ChunkIDs {
		d.SelectedPaths = append(d.SelectedPaths, string(id))
	}
	return d, nil
}

func decodeSynthesis(raw string) (Synthesis, error) {
	var p synthesisPayload
	if err := json.Unmarshal([]byte(stripCodeBlock(raw)), &p); err != nil {
		return Synthesis{}, fmt.Errorf("parse answer json: %w (raw: %s)", err, truncate(raw, 200))
	}
	s := Synthesis{
		Answer:    strings.TrimSpace(p.Answer),
		Rationale: strings.TrimSpace(p.Reasoning),
	}
	for _, id := range p.Citations {
		s.Citations = append(s.Citations, string(id))
	}
	return s, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
