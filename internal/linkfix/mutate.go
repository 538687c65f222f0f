package linkfix

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultHiddenClass is the class put on the appended screen-reader span.
const DefaultHiddenClass = "linklabel-sr-only"

// ApplyLabel sets aria-label on the anchor and appends a visually hidden,
// aria-hidden span carrying the same label after the anchor's content.
func ApplyLabel(a Anchor, label, hiddenClass string) {
	if hiddenClass == "" {
		hiddenClass = DefaultHiddenClass
	}
	setAttr(a.Node, "aria-label", label)

	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: hiddenClass},
			{Key: "aria-hidden", Val: "true"},
		},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: " " + label})
	a.Node.AppendChild(span)
}
