package parser

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer converts Markdown into an HTML fragment using goldmark.
// Headings get generated ids so in-page links resolve to them.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(src string) (string, error) {
	md := goldmark.New(
		goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
