package parser

import (
	"bufio"
	"html"
	"strings"
)

// TextRenderer turns plain text into escaped paragraphs. Blank lines separate
// paragraphs; single newlines become <br>.
type TextRenderer struct{}

func (r *TextRenderer) Render(src string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, "<p>"+strings.Join(current, "<br>\n")+"</p>")
			current = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, html.EscapeString(line))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(paragraphs, "\n"), nil
}
