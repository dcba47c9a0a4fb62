package oracle

import (
	"strconv"
	"strings"
	"testing"
)

func TestPreview_ShortTextUnchanged(t *testing.T) {
	text := "A short chunk that fits the routing window."
	if got := Preview(text, 900); got != text {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestPreview_SamplesHeadMiddleTail(t *testing.T) {
	words := make([]string, 3000)
	for i := range words {
		words[i] = "w" + strconv.Itoa(i)
	}
	text := strings.Join(words, " ")

	got := Preview(text, 900)
	if got == text {
		t.Fatalf("expected sampling for long text")
	}
	if strings.Count(got, "\n...\n") != 2 {
		t.Errorf("expected two elisions, got %q", got[:80])
	}
	if !strings.HasPrefix(got, "w0 ") {
		t.Errorf("expected head to open the preview")
	}
	if !strings.HasSuffix(got, "w2999") {
		t.Errorf("expected tail to close the preview")
	}
	if !strings.Contains(got, "w1500") {
		t.Errorf("expected middle sample around the midpoint")
	}
	if len(got) >= len(text)/2 {
		t.Errorf("preview did not shrink the text: %d of %d bytes", len(got), len(text))
	}
}

func TestPreview_DisabledBudgetPassesThrough(t *testing.T) {
	text := strings.Repeat("word ", 5000)
	if got := Preview(text, 0); got != text {
		t.Errorf("expected passthrough when budget is disabled")
	}
}

func TestBuildRouteUser_Layout(t *testing.T) {
	req := RouteRequest{
		Question:   "What is the filing deadline?",
		Depth:      1,
		Scratchpad: "DEPTH 0 REASONING:\nchunk 3 covers deadlines",
		Candidates: []Candidate{
			{Path: "3.0", Preview: "Deadlines are thirty days."},
			{Path: "3.1", Preview: "Fees are separate."},
		},
	}
	got := buildRouteUser(req)

	if !strings.Contains(got, "QUESTION: What is the filing deadline?") {
		t.Errorf("missing question")
	}
	if !strings.Contains(got, "CURRENT SCRATCHPAD:\nDEPTH 0 REASONING:") {
		t.Errorf("missing scratchpad block")
	}
	if !strings.Contains(got, "CHUNK 3.0:\nDeadlines are thirty days.") {
		t.Errorf("missing first candidate")
	}
	if !strings.Contains(got, "CHUNK 3.1:") {
		t.Errorf("missing second candidate")
	}
}

func TestBuildRouteUser_OmitsEmptyScratchpad(t *testing.T) {
	got := buildRouteUser(RouteRequest{
		Question:   "q",
		Candidates: []Candidate{{Path: "0", Preview: "p"}},
	})
	if strings.Contains(got, "SCRATCHPAD") {
		t.Errorf("scratchpad block should be absent on the first pass")
	}
}

func TestBuildSynthesisSystem_ListsValidCitations(t *testing.T) {
	got := buildSynthesisSystem(SynthesisRequest{
		Passages: []Passage{{Path: "2.1"}, {Path: "2.4"}, {Path: "7"}},
	})
	if !strings.Contains(got, "Valid citation IDs are: 2.1, 2.4, 7") {
		t.Errorf("missing citation whitelist: %q", got)
	}
}

func TestBuildSynthesisUser_Layout(t *testing.T) {
	got := buildSynthesisUser(SynthesisRequest{
		Question:   "What is covered?",
		Scratchpad: "DEPTH 0 REASONING:\nlooked at scope",
		Passages:   []Passage{{Path: "1.2", Text: "Scope covers appeals."}},
	})
	if !strings.Contains(got, "SCRATCHPAD (Navigation reasoning):\nDEPTH 0 REASONING:") {
		t.Errorf("missing scratchpad")
	}
	if !strings.Contains(got, "PARAGRAPH 1.2:\nScope covers appeals.") {
		t.Errorf("missing passage")
	}
}
