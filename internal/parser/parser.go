package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Result is the extracted content of one document: a flat plain text plus
// whatever metadata the format provides. Paragraphs and headings are
// separated by blank lines so sentence segmentation keeps them apart.
type Result struct {
	Title string // Best-effort title, falling back to the filename.
	Text  string
	Pages int // Page count for paginated formats, 0 otherwise.
}

// Parser converts raw document bytes into extracted text.
type Parser interface {
	Parse(r io.Reader, filename string) (*Result, error)
}

// Options tunes format-specific behavior.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// textBuilder accumulates blank-line separated paragraphs.
type textBuilder struct {
	sb strings.Builder
}

func (b *textBuilder) Add(paragraph string) {
	p := strings.TrimSpace(paragraph)
	if p == "" {
		return
	}
	if b.sb.Len() > 0 {
		b.sb.WriteString("\n\n")
	}
	b.sb.WriteString(p)
}

func (b *textBuilder) String() string { return b.sb.String() }

func titleFromFilename(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
