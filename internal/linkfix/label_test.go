package linkfix

import (
	"strings"
	"testing"
)

// firstAnchor parses fragment and returns its first anchor.
func firstAnchor(t *testing.T, fragment string) Anchor {
	t.Helper()
	tree, err := Parse(fragment)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	anchors := CollectAnchors(tree)
	if len(anchors) == 0 {
		t.Fatalf("expected an anchor in %q", fragment)
	}
	return anchors[0]
}

func TestInferLabel_Strategies(t *testing.T) {
	tests := []struct {
		name         string
		fragment     string
		wantLabel    string
		wantStrategy Strategy
	}{
		{
			name:         "enclosing heading",
			fragment:     `<h2>Pricing Plans <a href="/x">here</a></h2>`,
			wantLabel:    "about Pricing Plans here",
			wantStrategy: StrategyHeading,
		},
		{
			name:         "preceding sibling heading",
			fragment:     `<div><h2>Pricing Plans</h2><a href="/x">click here</a></div>`,
			wantLabel:    "about Pricing Plans",
			wantStrategy: StrategyHeading,
		},
		{
			name:         "heading before the enclosing paragraph",
			fragment:     `<section><h3>Release Notes</h3><p>See the list <a href="/r">here</a>.</p></section>`,
			wantLabel:    "about Release Notes",
			wantStrategy: StrategyHeading,
		},
		{
			name:         "heading whitespace collapsed",
			fragment:     "<div><h2>  Pricing \n\t Plans </h2><a href=\"/x\">more</a></div>",
			wantLabel:    "about Pricing Plans",
			wantStrategy: StrategyHeading,
		},
		{
			name:         "same-page anchor",
			fragment:     `<a href="#my-section">learn more</a>`,
			wantLabel:    "about My Section",
			wantStrategy: StrategyFragment,
		},
		{
			name:         "same-page anchor with underscores",
			fragment:     `<a href="#faq_billing">more</a>`,
			wantLabel:    "about Faq Billing",
			wantStrategy: StrategyFragment,
		},
		{
			name:         "url path with extension",
			fragment:     `<a href="/docs/getting-started.html">read more</a>`,
			wantLabel:    "about Getting Started",
			wantStrategy: StrategyPath,
		},
		{
			name:         "url path uppercase php extension",
			fragment:     `<a href="https://example.com/blog/my_post.PHP?p=2">more</a>`,
			wantLabel:    "about My Post",
			wantStrategy: StrategyPath,
		},
		{
			name:         "url path trailing slash",
			fragment:     `<a href="/products/widgets/">details</a>`,
			wantLabel:    "about Widgets",
			wantStrategy: StrategyPath,
		},
		{
			name:         "relative url with dots",
			fragment:     `<a href="v1.2-notes">info</a>`,
			wantLabel:    "about V1 2 Notes",
			wantStrategy: StrategyPath,
		},
		{
			name:         "same-page anchor starting with a digit",
			fragment:     `<a href="#1st-item">here</a>`,
			wantLabel:    "about 1st Item",
			wantStrategy: StrategyFragment,
		},
		{
			name:         "same-page anchor with punctuation",
			fragment:     `<a href="#a+b">here</a>`,
			wantLabel:    "about A+b",
			wantStrategy: StrategyFragment,
		},
		{
			name:         "url path with parentheses",
			fragment:     `<a href="/x/foo(bar).php">here</a>`,
			wantLabel:    "about Foo(bar)",
			wantStrategy: StrategyPath,
		},
		{
			name:         "url path starting with a digit",
			fragment:     `<a href="/legal/3rd-party-licenses">details</a>`,
			wantLabel:    "about 3rd Party Licenses",
			wantStrategy: StrategyPath,
		},
		{
			name:         "empty href",
			fragment:     `<a href="">here</a>`,
			wantLabel:    "about this content",
			wantStrategy: StrategyFallback,
		},
		{
			name:         "missing href",
			fragment:     `<a>here</a>`,
			wantLabel:    "about this content",
			wantStrategy: StrategyFallback,
		},
		{
			name:         "host only url",
			fragment:     `<a href="https://example.com/">here</a>`,
			wantLabel:    "about this content",
			wantStrategy: StrategyFallback,
		},
		{
			name:         "opaque url",
			fragment:     `<a href="mailto:team@example.com">here</a>`,
			wantLabel:    "about this content",
			wantStrategy: StrategyFallback,
		},
		{
			name:         "bare hash",
			fragment:     `<a href="#">here</a>`,
			wantLabel:    "about this content",
			wantStrategy: StrategyFallback,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := firstAnchor(t, tt.fragment)
			label, strategy := inferLabel(a)
			if label != tt.wantLabel {
				t.Errorf("expected label %q, got %q", tt.wantLabel, label)
			}
			if strategy != tt.wantStrategy {
				t.Errorf("expected strategy %q, got %q", tt.wantStrategy, strategy)
			}
		})
	}
}

func TestHeadingContext_LengthBounds(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		want    string
	}{
		{"exactly five chars rejected", "Plans", ""},
		{"six chars accepted", "Plans!", "Plans!"},
		{"119 chars accepted", strings.Repeat("x", 119), strings.Repeat("x", 119)},
		{"120 chars rejected", strings.Repeat("x", 120), ""},
		{"counted in characters", "Ünïcø", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := firstAnchor(t, `<div><h2>`+tt.heading+`</h2><a href="/x">more</a></div>`)
			if got := headingContext(a.Node); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// A heading that fails the length check does not end the heading search; the
// walk keeps climbing and may find an outer heading. This mirrors the
// established behavior on purpose.
func TestHeadingContext_RejectedHeadingKeepsClimbing(t *testing.T) {
	fragment := `<section><h2>Widget Guide</h2><div><h3>Tips</h3><p><a href="#tips">here</a></p></div></section>`
	a := firstAnchor(t, fragment)

	label, strategy := inferLabel(a)
	if label != "about Widget Guide" {
		t.Errorf("expected outer heading label, got %q", label)
	}
	if strategy != StrategyHeading {
		t.Errorf("expected strategy %q, got %q", StrategyHeading, strategy)
	}
}

func TestHeadingContext_DepthLimit(t *testing.T) {
	// The heading is the fifth ancestor: reachable.
	within := `<h2>Pricing Plans <span><span><span><span><a href="/x">here</a></span></span></span></span></h2>`
	if got := headingContext(firstAnchor(t, within).Node); got != "Pricing Plans here" {
		t.Errorf("expected heading within 5 levels, got %q", got)
	}

	// The heading is the sixth ancestor: out of reach.
	beyond := `<h2>Pricing Plans <span><span><span><span><span><a href="/x">here</a></span></span></span></span></span></h2>`
	a := firstAnchor(t, beyond)
	if got := headingContext(a.Node); got != "" {
		t.Errorf("expected no heading beyond 5 levels, got %q", got)
	}
	if label, _ := inferLabel(a); label != "about X" {
		t.Errorf("expected url fallback, got %q", label)
	}
}

func TestHeadingContext_FollowingHeadingIgnored(t *testing.T) {
	a := firstAnchor(t, `<div><a href="#top">more</a><h2>Next Section</h2></div>`)
	if got := headingContext(a.Node); got != "" {
		t.Errorf("expected headings after the link to be ignored, got %q", got)
	}
}

func TestGenerateLabel_Disqualified(t *testing.T) {
	patterns := newPatternSet([]string{"click here"})

	tests := []struct {
		name     string
		fragment string
	}{
		{"text not generic", `<a href="/x">pricing details</a>`},
		{"substring only", `<a href="/x">click here now</a>`},
		{"existing aria-label", `<a href="/x" aria-label="Pricing">click here</a>`},
		{"existing aria-labelledby", `<a href="/x" aria-labelledby="h1">click here</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := GenerateLabel(firstAnchor(t, tt.fragment), patterns)
			if ok {
				t.Errorf("expected %q to be disqualified", tt.fragment)
			}
		})
	}
}

func TestGenerateLabel_CaseAndWhitespaceInsensitive(t *testing.T) {
	patterns := newPatternSet([]string{"read more"})
	a := firstAnchor(t, "<a href=\"#faq\">\n  Read <b>MORE</b>  </a>")
	// Inner whitespace is not collapsed: "read more" must match exactly.
	label, strategy, ok := GenerateLabel(a, patterns)
	if !ok {
		t.Fatalf("expected anchor text %q to match", a.Text)
	}
	if label != "about Faq" || strategy != StrategyFragment {
		t.Errorf("expected fragment label %q, got %q (%s)", "about Faq", label, strategy)
	}
}

func TestGenerateLabel_EmptyAriaLabelDoesNotDisqualify(t *testing.T) {
	patterns := newPatternSet([]string{"here"})
	if _, _, ok := GenerateLabel(firstAnchor(t, `<a href="" aria-label="  ">here</a>`), patterns); !ok {
		t.Error("expected a blank aria-label to be treated as missing")
	}
}
