package parser

import (
	"fmt"
	"strings"
)

// Format identifies how a content unit body is encoded.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Renderer converts a content unit body into an HTML fragment.
type Renderer interface {
	Render(src string) (string, error)
}

// ParseFormat normalizes a user-supplied format name. Empty means HTML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported content format: %s", s)
	}
}

// ForFormat returns the renderer for a format.
func ForFormat(format Format) (Renderer, error) {
	switch format {
	case FormatHTML, "":
		return &HTMLRenderer{}, nil
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatText:
		return &TextRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported content format: %s", format)
	}
}

// FormatForFile guesses a format from a filename extension.
func FormatForFile(filename string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".md"), strings.HasSuffix(lower, ".markdown"):
		return FormatMarkdown
	case strings.HasSuffix(lower, ".txt"):
		return FormatText
	default:
		return FormatHTML
	}
}
