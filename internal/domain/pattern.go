package domain

import "strings"

// Wildcard is the marker a pattern may end with to request prefix matching.
const Wildcard = "*"

// Pattern selects action identifiers. A pattern ending in the wildcard
// marker matches any identifier sharing its literal prefix (marker
// stripped); without the marker it matches on exact equality only.
// Matching is case-sensitive; there are no regex semantics and no segment
// awareness beyond the plain prefix comparison.
type Pattern string

// Matches reports whether id is selected by the pattern.
func (p Pattern) Matches(id ActionID) bool {
	raw := string(p)
	if strings.HasSuffix(raw, Wildcard) {
		return strings.HasPrefix(string(id), raw[:len(raw)-len(Wildcard)])
	}
	return raw == string(id)
}

// Patterns is an ordered pattern list. Order carries no matching priority;
// a single match anywhere in the list is sufficient.
type Patterns []Pattern

// Any reports whether at least one pattern matches id.
func (ps Patterns) Any(id ActionID) bool {
	for _, p := range ps {
		if p.Matches(id) {
			return true
		}
	}
	return false
}

// ParsePatterns converts raw configuration strings into a pattern list.
func ParsePatterns(raw []string) Patterns {
	if len(raw) == 0 {
		return nil
	}
	ps := make(Patterns, 0, len(raw))
	for _, r := range raw {
		ps = append(ps, Pattern(r))
	}
	return ps
}
