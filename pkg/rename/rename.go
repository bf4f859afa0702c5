// Package rename holds the forced-rename rules applied to channel
// names before catalog matching. Rules are ordered: brand names are
// ambiguous substrings of each other, so a specific rule must sit
// above its generic fallback.
package rename

import (
	"regexp"
	"strings"
)

// RotatingFeedName is the canonical display name shared by the
// numbered movie feeds. Channels renamed to it are exempt from
// deduplication downstream: each numbered feed is a physically
// distinct stream.
const RotatingFeedName = "Telugu Movies"

// rotatingFeed matches the numbered/year-suffixed variants of the
// generic feed name, e.g. "Telugu 1" or "Telugu 2022".
var rotatingFeed = regexp.MustCompile(`(?i)^telugu\s*\d{1,4}$`)

// Rule replaces a whole channel name when Match occurs anywhere in it,
// case-insensitively. The first rule in a table that matches wins and
// later rules are not consulted.
type Rule struct {
	Match   string `json:"match" yaml:"match" mapstructure:"match"`
	Replace string `json:"replace" yaml:"replace" mapstructure:"replace"`
}

// Table evaluates rules top to bottom with first-match-wins semantics.
type Table struct {
	rules []Rule
}

// NewTable builds a rule table. Rule order is the caller's priority
// order and is preserved.
func NewTable(rules []Rule) *Table {
	return &Table{rules: rules}
}

// Defaults is the built-in rule set for the target region's branding.
// Specific entries stay above the generic ones they overlap with.
func Defaults() []Rule {
	return []Rule{
		{Match: "history tv18", Replace: "History TV18"},
		{Match: "history", Replace: "History TV18"},
		{Match: "gemini hd", Replace: "Gemini TV HD"},
		{Match: "gemini movies", Replace: "Gemini Movies"},
		{Match: "zee cinemalu", Replace: "Zee Cinemalu"},
		{Match: "etv cinema", Replace: "ETV Cinema"},
		{Match: "etv plus", Replace: "ETV Plus"},
	}
}

// Apply resolves the final forced name for a channel. The rotating
// feed rule runs first and short-circuits the static table; otherwise
// the first matching static rule replaces the whole name. Names with
// no matching rule come back unchanged.
func (t *Table) Apply(name string) string {
	trimmed := strings.TrimSpace(name)
	if rotatingFeed.MatchString(trimmed) {
		return RotatingFeedName
	}

	lower := strings.ToLower(trimmed)
	for _, r := range t.rules {
		if r.Match == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(r.Match)) {
			return r.Replace
		}
	}

	return trimmed
}
