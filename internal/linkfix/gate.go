package linkfix

import "strings"

// ShouldProcess reports whether a fragment is worth parsing at all. It never
// touches the fragment beyond a case-insensitive substring check for an
// anchor open tag.
func ShouldProcess(fragment string, cfg Config) bool {
	if !cfg.Enabled || len(cfg.Patterns) == 0 || fragment == "" {
		return false
	}
	return containsFold(fragment, "<a ") || containsFold(fragment, "<a>")
}

// containsFold is an allocation-free ASCII case-insensitive strings.Contains.
func containsFold(s, substr string) bool {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return true
		}
	}
	return false
}
