package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings become
// their own paragraphs in the flat text, in document order.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Result, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var out textBuilder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			out.Add(string(node.Text(src)))
		default:
			out.Add(extractText(n, src))
		}
	}

	return &Result{
		Title: titleFromFilename(filename),
		Text:  out.String(),
	}, nil
}

// extractText gets the text content of a goldmark AST node. Blocks that own
// source lines, paragraphs and code fences, read them directly; container
// blocks like lists recurse into their children instead, so nothing is
// emitted twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			if i > 0 {
				buf.WriteByte('\n')
			}
			seg := lines.At(i)
			buf.Write(bytes.TrimRight(seg.Value(src), "\n"))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := extractText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
