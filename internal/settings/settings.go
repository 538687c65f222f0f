// Package settings is the configuration provider for link labeling: the
// enable flag and the list of generic link texts, normalized on the way in.
package settings

import (
	"errors"
	"strings"
)

// OptionName is the key the settings are persisted under.
const OptionName = "linklabel_options"

// ErrNotFound is returned by stores when no settings have been saved.
var ErrNotFound = errors.New("settings not found")

// DefaultTexts are used whenever no generic texts are configured.
var DefaultTexts = []string{
	"learn more",
	"click here",
	"read more",
	"more",
	"see more",
	"view more",
	"here",
	"details",
	"info",
	"continue reading",
	"find out more",
}

// Settings is the persisted plugin configuration. GenericTexts is kept
// normalized: trimmed, lowercased, no empty entries.
type Settings struct {
	Enabled      bool     `json:"enable" yaml:"enable"`
	GenericTexts []string `json:"generic_texts" yaml:"generic_texts"`
}

// Defaults returns enabled settings with the given texts, or DefaultTexts
// when none are given.
func Defaults(texts []string) Settings {
	texts = Normalize(texts)
	if len(texts) == 0 {
		texts = Normalize(DefaultTexts)
	}
	return Settings{Enabled: true, GenericTexts: texts}
}

// IsEnabled implements linkfix.Provider.
func (s Settings) IsEnabled() bool { return s.Enabled }

// GenericPatterns implements linkfix.Provider.
func (s Settings) GenericPatterns() []string { return s.GenericTexts }

// Normalize trims and lowercases each text and drops empty entries and
// duplicates, keeping first-seen order.
func Normalize(texts []string) []string {
	out := make([]string, 0, len(texts))
	seen := make(map[string]bool, len(texts))
	for _, t := range texts {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Form is the settings form payload: a checkbox and a textarea with one
// generic text per line.
type Form struct {
	Enable       bool   `json:"enable"`
	GenericTexts string `json:"generic_texts"`
}

// Sanitize converts a submitted form into normalized settings.
func Sanitize(f Form) Settings {
	lines := strings.Split(strings.ReplaceAll(f.GenericTexts, "\r\n", "\n"), "\n")
	return Settings{
		Enabled:      f.Enable,
		GenericTexts: Normalize(lines),
	}
}

// ToForm renders settings back into form shape.
func (s Settings) ToForm() Form {
	return Form{
		Enable:       s.Enabled,
		GenericTexts: strings.Join(s.GenericTexts, "\n"),
	}
}

// withFallback fills in defaults when the stored list came back empty.
func (s Settings) withFallback(defaults []string) Settings {
	s.GenericTexts = Normalize(s.GenericTexts)
	if len(s.GenericTexts) == 0 {
		s.GenericTexts = Defaults(defaults).GenericTexts
	}
	return s
}
