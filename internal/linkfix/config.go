package linkfix

// Provider supplies the enable flag and the generic link texts. Implementations
// return patterns already trimmed and lowercased; the labeler compares them
// verbatim.
type Provider interface {
	IsEnabled() bool
	GenericPatterns() []string
}

// Config is the read-only snapshot a single transform runs against.
type Config struct {
	Enabled  bool
	Patterns []string
}

// ConfigFrom snapshots a provider. The pattern slice is copied so later
// changes on the provider side never leak into a running transform.
func ConfigFrom(p Provider) Config {
	if p == nil {
		return Config{}
	}
	patterns := p.GenericPatterns()
	cp := make([]string, len(patterns))
	copy(cp, patterns)
	return Config{
		Enabled:  p.IsEnabled(),
		Patterns: cp,
	}
}

func (c Config) IsEnabled() bool { return c.Enabled }

func (c Config) GenericPatterns() []string { return c.Patterns }

// patternSet is the per-call lookup table built from Config.Patterns.
type patternSet map[string]struct{}

func newPatternSet(patterns []string) patternSet {
	set := make(patternSet, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	return set
}

func (s patternSet) has(text string) bool {
	_, ok := s[text]
	return ok
}
