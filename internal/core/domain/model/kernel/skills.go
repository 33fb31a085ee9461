package kernel

import (
	"slices"
	"strings"
)

// NormalizeSkills trims, lower-cases and de-duplicates skill names and returns them
// sorted. Blank entries are dropped. The result is never nil.
//
// Example:
//
//	NormalizeSkills([]string{" Plumbing", "plumbing", "", "Tiling"}) // [plumbing tiling]
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}

	slices.Sort(out)
	return slices.Compact(out)
}

// SkillsOverlap reports whether at least one skill appears in both sets, ignoring case
// and surrounding whitespace.
func SkillsOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[strings.ToLower(strings.TrimSpace(s))]; ok {
			return true
		}
	}
	return false
}
