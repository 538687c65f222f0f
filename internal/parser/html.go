package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// HTMLRenderer passes HTML fragments through. Full documents are reduced to
// the contents of their <body>, since the labeler works on fragments.
type HTMLRenderer struct{}

var documentMarker = regexp.MustCompile(`(?i)<(!doctype|html[\s>]|body[\s>])`)

func (r *HTMLRenderer) Render(src string) (string, error) {
	if !documentMarker.MatchString(src) {
		return src, nil
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return src, nil
	}

	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("render body: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
