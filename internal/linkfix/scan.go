package linkfix

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Anchor is one <a> element found in a Tree, with the fields the labeler
// needs precomputed.
type Anchor struct {
	Node *html.Node

	// Text is the anchor's visible text, trimmed and lowercased.
	Text string

	Href    string
	HasHref bool

	// AriaLabel and LabelledBy are the existing accessible-name attributes.
	AriaLabel  string
	LabelledBy string
}

// HasAccessibleName reports whether the author already named this link.
func (a Anchor) HasAccessibleName() bool {
	return strings.TrimSpace(a.AriaLabel) != "" || strings.TrimSpace(a.LabelledBy) != ""
}

// CollectAnchors returns every HTML anchor in document order. The result is a
// snapshot: appending children to the returned nodes does not change it.
func CollectAnchors(t *Tree) []Anchor {
	var anchors []Anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A && n.Namespace == "" {
			anchors = append(anchors, newAnchor(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(t.root)
	return anchors
}

func newAnchor(n *html.Node) Anchor {
	a := Anchor{
		Node: n,
		Text: strings.ToLower(strings.TrimSpace(textContent(n))),
	}
	if href, ok := getAttr(n, "href"); ok {
		a.Href = strings.TrimSpace(href)
		a.HasHref = a.Href != ""
	}
	a.AriaLabel, _ = getAttr(n, "aria-label")
	a.LabelledBy, _ = getAttr(n, "aria-labelledby")
	return a
}
