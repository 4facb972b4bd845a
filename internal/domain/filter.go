package domain

// FilterSpec carries a filter's identity and applicability configuration.
// An empty Only list means "match all actions"; Except defaults to empty.
type FilterSpec struct {
	Name   string
	Only   Patterns
	Except Patterns
}

// Applies reports whether the filter participates in an invocation of the
// given (scope-relative) action identifier. An except match always wins
// over an only match, even a more specific one: explicit exclusion
// overrides inclusion.
func (s FilterSpec) Applies(id ActionID) bool {
	if s.Except.Any(id) {
		return false
	}
	if len(s.Only) == 0 {
		return true
	}
	return s.Only.Any(id)
}
