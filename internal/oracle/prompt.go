package oracle

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docnav/internal/chunker"
)

const routeSystem = `You are an expert document navigator. Your task is to:
1. Identify which text chunks might contain information to answer the user's question
2. Record your reasoning so it can guide later, deeper passes
3. Choose chunks that are most likely relevant. Be selective, but thorough. Choose as many chunks as you need to answer the question, but avoid selecting too many.

First think carefully about what information would help answer the question, then evaluate each chunk.

Respond with ONLY a JSON object in this exact form:
{"reasoning": "<why these chunks>", "chunk_ids": ["<chunk id>", ...], "none_relevant": false}

If no chunk could contain information relevant to the question, return an empty chunk_ids list and set none_relevant to true.`

// buildRouteUser lays out the question, the scratchpad so far, and every
// candidate under its path label.
func buildRouteUser(req RouteRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "QUESTION: %s\n\n", req.Question)
	if req.Scratchpad != "" {
		fmt.Fprintf(&sb, "CURRENT SCRATCHPAD:\n%s\n\n", req.Scratchpad)
	}
	sb.WriteString("TEXT CHUNKS:\n\n")
	for _, c := range req.Candidates {
		fmt.Fprintf(&sb, "CHUNK %s:\n%s\n\n", c.Path, c.Preview)
	}
	return sb.String()
}

const synthesisSystemFmt = `You are a research assistant answering questions about a document.

Answer the question based ONLY on the provided paragraphs. Do not rely on outside knowledge or extrapolate beyond them.
Cite phrases of the paragraphs that are relevant to the answer. This will help you be specific and accurate.
Include citations to paragraph IDs for every statement in your answer. Valid citation IDs are: %s
Keep your answer clear, precise, and professional.

Respond with ONLY a JSON object in this exact form:
{"reasoning": "<how the paragraphs support the answer>", "answer": "<your answer>", "citations": ["<paragraph id>", ...]}`

func buildSynthesisSystem(req SynthesisRequest) string {
	ids := make([]string, len(req.Passages))
	for i, p := range req.Passages {
		ids[i] = p.Path
	}
	return fmt.Sprintf(synthesisSystemFmt, strings.Join(ids, ", "))
}

func buildSynthesisUser(req SynthesisRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "QUESTION: %s\n\n", req.Question)
	fmt.Fprintf(&sb, "SCRATCHPAD (Navigation reasoning):\n%s\n\n", req.Scratchpad)
	sb.WriteString("PARAGRAPHS:\n")
	for _, p := range req.Passages {
		fmt.Fprintf(&sb, "PARAGRAPH %s:\n%s\n\n", p.Path, p.Text)
	}
	return sb.String()
}

// Preview samples the head, middle, and tail of text so the router keeps
// global coverage of a chunk without receiving all of it. Text at or under
// maxTokens passes through untouched.
func Preview(text string, maxTokens int) string {
	if maxTokens <= 0 || chunker.EstimateTokens(text) <= maxTokens {
		return text
	}
	words := strings.Fields(text)
	per := int(float64(maxTokens) / 1.33 / 3)
	if per < 1 {
		per = 1
	}
	if len(words) <= per*3 {
		return text
	}
	head := strings.Join(words[:per], " ")
	midStart := len(words)/2 - per/2
	if midStart < 0 {
		midStart = 0
	}
	middle := strings.Join(words[midStart:midStart+per], " ")
	tail := strings.Join(words[len(words)-per:], " ")
	return head + "\n...\n" + middle + "\n...\n" + tail
}
