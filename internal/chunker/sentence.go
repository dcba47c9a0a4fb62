package chunker

// Span is a half-open byte range [Start, End) into a document text.
type Span struct {
	Start int
	End   int
}

// abbreviations that commonly precede a period without ending a sentence.
// Lowercased; single-letter initials and bare numbers are handled separately.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true,
	"sr": true, "jr": true, "st": true, "vs": true, "etc": true,
	"no": true, "vol": true, "fig": true, "sec": true, "al": true,
	"inc": true, "ltd": true, "co": true, "corp": true, "dept": true,
	"approx": true, "est": true, "misc": true, "jan": true, "feb": true,
	"mar": true, "apr": true, "jun": true, "jul": true, "aug": true,
	"sep": true, "sept": true, "oct": true, "nov": true, "dec": true,
}

// SplitSentences segments text into contiguous sentence spans. The spans
// cover the input exactly: spans[0].Start == 0, spans[n-1].End == len(text),
// and each span starts where the previous one ends. Trailing whitespace after
// a terminator belongs to the sentence it follows.
//
// Splitting is conservative. A boundary needs a terminator (. ! ?) followed
// by whitespace, and a period is ignored after initials, bare numbers, and
// common abbreviations. A blank line always ends the current sentence, so
// headings without punctuation still form their own span. Under-splitting
// only merges neighbors into one span; it never loses text.
func SplitSentences(text string) []Span {
	if text == "" {
		return nil
	}
	var spans []Span
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '.' || c == '!' || c == '?':
			j := i + 1
			for j < len(text) && isCloser(text[j]) {
				j++
			}
			if j < len(text) && isSpace(text[j]) && !(c == '.' && periodSuppressed(text, start, i)) {
				k := j
				for k < len(text) && isSpace(text[k]) {
					k++
				}
				spans = append(spans, Span{Start: start, End: k})
				start = k
				i = k
				continue
			}
			i = j
		case c == '\n':
			k := i
			newlines := 0
			for k < len(text) && isSpace(text[k]) {
				if text[k] == '\n' {
					newlines++
				}
				k++
			}
			if newlines >= 2 && start < i {
				spans = append(spans, Span{Start: start, End: k})
				start = k
			}
			i = k
		default:
			i++
		}
	}
	if start < len(text) {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans
}

// periodSuppressed reports whether the period at dot should not end a
// sentence, based on the word immediately before it.
func periodSuppressed(text string, sentStart, dot int) bool {
	w := dot
	for w > sentStart && isWordByte(text[w-1]) {
		w--
	}
	word := text[w:dot]
	if word == "" {
		// Runs like "..." never split mid-run.
		return true
	}
	if len(word) == 1 && isLetter(word[0]) {
		// Initials: "J. Smith", and the pieces of "e.g." / "U.S.".
		return true
	}
	if allDigits(word) {
		// List numbering and years: "3. Scope", "2024.".
		return true
	}
	return abbreviations[lower(word)]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isCloser(c byte) bool {
	return c == '"' || c == '\'' || c == ')' || c == ']'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordByte(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c >= 0x80
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
