package oracle

import (
	"strings"
	"testing"
)

func TestDecodeRoute_PlainObject(t *testing.T) {
	raw := `{"reasoning": "sections 3 and 5 discuss fees", "chunk_ids": ["3", "5"], "none_relevant": false}`
	d, err := decodeRoute(raw)
	if err != nil {
		t.Fatalf("decodeRoute: %v", err)
	}
	if len(d.SelectedPaths) != 2 || d.SelectedPaths[0] != "3" || d.SelectedPaths[1] != "5" {
		t.Errorf("unexpected selection: %v", d.SelectedPaths)
	}
	if d.NoneRelevant {
		t.Errorf("none_relevant should be false")
	}
	if d.Rationale != "sections 3 and 5 discuss fees" {
		t.Errorf("unexpected rationale: %q", d.Rationale)
	}
}

func TestDecodeRoute_FencedJSON(t *testing.T) {
	raw := "```json\n{\"reasoning\": \"r\", \"chunk_ids\": [\"0.2\"], \"none_relevant\": false}\n```"
	d, err := decodeRoute(raw)
	if err != nil {
		t.Fatalf("decodeRoute: %v", err)
	}
	if len(d.SelectedPaths) != 1 || d.SelectedPaths[0] != "0.2" {
		t.Errorf("unexpected selection: %v", d.SelectedPaths)
	}
}

func TestDecodeRoute_NumericIDs(t *testing.T) {
	// Top-level labels look like integers and models sometimes return them
	// unquoted.
	raw := `{"reasoning": "r", "chunk_ids": [3, 17], "none_relevant": false}`
	d, err := decodeRoute(raw)
	if err != nil {
		t.Fatalf("decodeRoute: %v", err)
	}
	if len(d.SelectedPaths) != 2 || d.SelectedPaths[0] != "3" || d.SelectedPaths[1] != "17" {
		t.Errorf("unexpected selection: %v", d.SelectedPaths)
	}
}

func TestDecodeRoute_NoneRelevant(t *testing.T) {
	raw := `{"reasoning": "nothing covers this", "chunk_ids": [], "none_relevant": true}`
	d, err := decodeRoute(raw)
	if err != nil {
		t.Fatalf("decodeRoute: %v", err)
	}
	if !d.NoneRelevant {
		t.Errorf("expected none_relevant")
	}
	if len(d.SelectedPaths) != 0 {
		t.Errorf("expected empty selection, got %v", d.SelectedPaths)
	}
}

func TestDecodeRoute_Malformed(t *testing.T) {
	if _, err := decodeRoute("The relevant chunks are 3 and 5."); err == nil {
		t.Fatalf("expected error for prose response")
	}
	if _, err := decodeRoute(`{"chunk_ids": [true]}`); err == nil {
		t.Fatalf("expected error for boolean id")
	}
}

func TestDecodeSynthesis_DottedNumericCitation(t *testing.T) {
	raw := `{"reasoning": "Clause 7 states it directly.", "answer": "The deadline is 30 days.", "citations": [3.1, "3.4"]}`
	s, err := decodeSynthesis(raw)
	if err != nil {
		t.Fatalf("decodeSynthesis: %v", err)
	}
	if s.Answer != "The deadline is 30 days." {
		t.Errorf("unexpected answer: %q", s.Answer)
	}
	if s.Rationale != "Clause 7 states it directly." {
		t.Errorf("unexpected rationale: %q", s.Rationale)
	}
	if len(s.Citations) != 2 || s.Citations[0] != "3.1" || s.Citations[1] != "3.4" {
		t.Errorf("unexpected citations: %v", s.Citations)
	}
}

func TestStripCodeBlock(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{`{"a": 1}`, `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, c := range cases {
		if got := stripCodeBlock(c.in); got != c.want {
			t.Errorf("stripCodeBlock(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("unexpected: %q", got)
	}
	got := truncate(strings.Repeat("x", 300), 200)
	if len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 200 chars plus ellipsis, got %d chars", len(got))
	}
}
