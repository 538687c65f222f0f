package linkfix

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Strategy names the rule that produced a label.
type Strategy string

const (
	StrategyHeading  Strategy = "heading"
	StrategyFragment Strategy = "fragment"
	StrategyPath     Strategy = "path"
	StrategyFallback Strategy = "fallback"
)

const (
	labelPrefix   = "about "
	fallbackLabel = "about this content"

	maxHeadingDepth = 5
	minHeadingLen   = 5
	maxHeadingLen   = 120
)

var (
	pageExtension  = regexp.MustCompile(`(?i)\.(html|php)$`)
	slugSeparators = strings.NewReplacer(".", " ", "-", " ", "_", " ")
	idSeparators   = strings.NewReplacer("-", " ", "_", " ")
)

// GenerateLabel infers an accessible label for a generic anchor. ok is false
// when the anchor is not generic or already has an accessible name.
func GenerateLabel(a Anchor, patterns map[string]struct{}) (label string, strategy Strategy, ok bool) {
	if a.HasAccessibleName() || !patternSet(patterns).has(a.Text) {
		return "", "", false
	}
	label, strategy = inferLabel(a)
	return label, strategy, true
}

// inferLabel runs the strategies in priority order. It always returns a
// non-empty label.
func inferLabel(a Anchor) (string, Strategy) {
	if text := headingContext(a.Node); text != "" {
		return labelPrefix + text, StrategyHeading
	}
	if a.HasHref && strings.HasPrefix(a.Href, "#") {
		if label, ok := labelFromFragment(a.Href); ok {
			return label, StrategyFragment
		}
	} else if a.HasHref {
		if label, ok := labelFromPath(a.Href); ok {
			return label, StrategyPath
		}
	}
	return fallbackLabel, StrategyFallback
}

// headingContext climbs at most maxHeadingDepth ancestors. At each level it
// considers the ancestor itself when it is a heading, otherwise the nearest
// heading that precedes the current branch inside that ancestor. A heading
// whose text is out of bounds does not stop the climb.
func headingContext(n *html.Node) string {
	child := n
	parent := n.Parent
	for depth := 0; parent != nil && depth < maxHeadingDepth; depth++ {
		var h *html.Node
		if headingLevel(parent) > 0 {
			h = parent
		} else {
			h = precedingHeading(child)
		}
		if h != nil {
			if text, ok := headingText(h); ok {
				return text
			}
		}
		child = parent
		parent = parent.Parent
	}
	return ""
}

func precedingHeading(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if headingLevel(s) > 0 {
			return s
		}
	}
	return nil
}

func headingText(h *html.Node) (string, bool) {
	text := strings.Join(strings.Fields(textContent(h)), " ")
	n := utf8.RuneCountInString(text)
	if n > minHeadingLen && n < maxHeadingLen {
		return text, true
	}
	return "", false
}

// labelFromFragment turns "#pricing-plans" into "about Pricing Plans".
func labelFromFragment(href string) (string, bool) {
	words := strings.Fields(idSeparators.Replace(strings.TrimPrefix(href, "#")))
	if len(words) == 0 {
		return "", false
	}
	return labelPrefix + titleCase(strings.Join(words, " ")), true
}

// labelFromPath turns "/docs/getting-started.html" into "about Getting Started".
func labelFromPath(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	var last string
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			last = seg
		}
	}
	if last == "" {
		return "", false
	}

	last = pageExtension.ReplaceAllString(last, "")
	words := strings.Fields(slugSeparators.Replace(last))
	if len(words) == 0 {
		return "", false
	}
	return labelPrefix + titleCase(strings.Join(words, " ")), true
}

// titleCase upper-cases the first rune of each space-separated word and
// leaves the rest alone, so "1st" and "foo(bar)" keep their inner letters.
// A Caser holds state, so one is built per call.
func titleCase(s string) string {
	upper := cases.Upper(language.Und)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(w)
		words[i] = upper.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}
