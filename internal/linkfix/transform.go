// Package linkfix rewrites generic link text ("click here", "read more") in
// HTML fragments into links with a descriptive accessible name.
//
// Matching anchors get an aria-label and a trailing visually hidden span with
// the same text. The label comes from the nearest heading, the in-page target,
// the URL slug, or a literal fallback, in that order. Anchors that already
// carry an accessible name are left alone, so running the labeler over its own
// output changes nothing.
package linkfix

// Options tune how labels are written into the markup.
type Options struct {
	// HiddenClass is the class of the appended screen-reader span.
	HiddenClass string
}

// Labeled describes one anchor that received a label.
type Labeled struct {
	Href     string   `json:"href"`
	Text     string   `json:"text"`
	Label    string   `json:"label"`
	Strategy Strategy `json:"strategy"`
}

// Result is the outcome of processing one fragment.
type Result struct {
	HTML    string
	Changed bool

	// Anchors counts every anchor scanned; AlreadyLabeled counts generic
	// anchors skipped because the author had named them.
	Anchors        int
	AlreadyLabeled int
	Labeled        []Labeled
}

// Labeler applies generic-link labeling to fragments. It holds no per-call
// state and is safe for concurrent use.
type Labeler struct {
	opts  Options
	parse func(string) (*Tree, error)
}

func New(opts Options) *Labeler {
	if opts.HiddenClass == "" {
		opts.HiddenClass = DefaultHiddenClass
	}
	return &Labeler{opts: opts, parse: Parse}
}

// Transform labels generic links in fragment using default options.
func Transform(fragment string, cfg Config) string {
	return New(Options{}).Process(fragment, cfg).HTML
}

// Transform labels generic links in fragment and returns the new markup.
func (l *Labeler) Transform(fragment string, cfg Config) string {
	return l.Process(fragment, cfg).HTML
}

// Process labels generic links in fragment. It never fails: when nothing is
// labeled, or the fragment cannot be parsed or rendered, Result.HTML is the
// input unchanged.
func (l *Labeler) Process(fragment string, cfg Config) Result {
	res := Result{HTML: fragment}
	if !ShouldProcess(fragment, cfg) {
		return res
	}

	tree, err := l.parse(fragment)
	if err != nil {
		return res
	}

	patterns := newPatternSet(cfg.Patterns)
	anchors := CollectAnchors(tree)
	res.Anchors = len(anchors)

	// Labels are inferred against the untouched tree, then applied, so a
	// span appended to one anchor never leaks into another's heading text.
	type pending struct {
		anchor Anchor
		label  Labeled
	}
	var plan []pending
	for _, a := range anchors {
		if a.HasAccessibleName() && patterns.has(a.Text) {
			res.AlreadyLabeled++
			continue
		}
		label, strategy, ok := GenerateLabel(a, patterns)
		if !ok {
			continue
		}
		plan = append(plan, pending{
			anchor: a,
			label:  Labeled{Href: a.Href, Text: a.Text, Label: label, Strategy: strategy},
		})
	}
	if len(plan) == 0 {
		return res
	}

	for _, p := range plan {
		ApplyLabel(p.anchor, p.label.Label, l.opts.HiddenClass)
	}

	out, err := tree.Render()
	if err != nil {
		return res
	}
	res.HTML = out
	res.Changed = true
	for _, p := range plan {
		res.Labeled = append(res.Labeled, p.label)
	}
	return res
}
