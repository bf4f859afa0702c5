// Package normalize derives comparison keys from raw channel names.
// Portal names carry quality tags, region prefixes and decoration that
// reference catalogs do not, so both sides are reduced to the same key
// before any matching happens.
package normalize

import (
	"regexp"
	"strings"
)

// The tag vocabulary is matched longest-first so "FHD" is consumed
// before "HD" gets a chance to split it.
var (
	prefixTag   = regexp.MustCompile(`(?i)(TELUGU|IN-PREM|FHD|UHD|4K|HD|SD|TV)\s*\|\s*`)
	wordTag     = regexp.MustCompile(`(?i)\b(FHD|UHD|4K|HD|SD|TV|NEWS)\b`)
	brackets    = regexp.MustCompile(`[\[\](){}]`)
	qualityTag  = regexp.MustCompile(`(?i)\b(FHD|UHD|4K|HD|SD)\b`)
	nonAlnumSep = regexp.MustCompile(`[^a-z0-9 ]`)
	spaceRun    = regexp.MustCompile(`\s+`)
)

// Brand composition for the Maa family. The portal and the catalogs
// disagree on whether the parent brand is part of the name, so any
// name carrying the sub-brand token is rebuilt around the full brand
// before keys are compared.
const (
	brandParent = "Star"
	brandSub    = "Maa"
)

// stripTags removes the quality/region vocabulary and bracket noise.
// Tag-then-pipe prefixes go first, stand-alone tags second, matching
// the order the portal composes names in.
func stripTags(name string) string {
	s := prefixTag.ReplaceAllString(name, "")
	s = wordTag.ReplaceAllString(s, "")
	s = brackets.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Recompose rebuilds a Maa-family name as "Star Maa <remainder>". The
// remainder is the original tokens minus the brand's own redundant
// tokens. Names outside the family come back unchanged. Display names
// and comparison keys both go through this so catalog lookups and the
// final rename stay consistent.
func Recompose(name string) string {
	tokens := strings.Fields(name)

	inFamily := false
	for _, t := range tokens {
		if strings.EqualFold(t, brandSub) {
			inFamily = true
			break
		}
	}
	if !inFamily {
		return name
	}

	remainder := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if strings.EqualFold(t, brandParent) || strings.EqualFold(t, brandSub) || strings.EqualFold(t, "TV") {
			continue
		}
		remainder = append(remainder, t)
	}

	return strings.TrimSpace(brandParent + " " + brandSub + " " + strings.Join(remainder, " "))
}

// Key returns the strict comparison key for a raw channel name:
// SpacedKey with the remaining spaces removed. This fully collapsed
// form is what catalog and dedup lookups match on.
func Key(name string) string {
	return strings.ReplaceAll(SpacedKey(name), " ", "")
}

// SpacedKey reduces a raw name to lowercase alphanumeric tokens
// separated by single spaces: tags stripped, brand recomposed,
// punctuation dropped. Key collapses it further for exact lookups.
func SpacedKey(name string) string {
	s := Recompose(stripTags(name))
	s = strings.ToLower(s)
	s = spaceRun.ReplaceAllString(s, " ")
	s = nonAlnumSep.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// StripDisplay cleans a name for display when no catalog entry won.
// Only quality tags, pipe prefixes and brackets go; brand tokens like
// "TV" stay, since they are part of the name viewers know.
func StripDisplay(name string) string {
	s := prefixTag.ReplaceAllString(name, "")
	s = qualityTag.ReplaceAllString(s, "")
	s = brackets.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
