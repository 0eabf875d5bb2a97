package pareto

import "cmp"

// Rule selects the dominance test used by the greedy pass.
type Rule string

const (
	// RuleLenient reports a dominates b when b beats a on no dimension.
	// Identical vectors therefore dominate each other.
	RuleLenient Rule = "lenient"
	// RuleStrict additionally requires a to beat b on at least one dimension,
	// so identical vectors never dominate each other.
	RuleStrict Rule = "strict"
)

// Dominates reports whether a dominates b: b is not strictly greater than a
// on any dimension. Equal vectors dominate each other, so the greedy pass
// keeps only the first of a set of identical items.
// a and b must have the same length.
func Dominates[T cmp.Ordered](a, b []T) bool {
	for i := range b {
		if b[i] > a[i] {
			return false
		}
	}
	return true
}

// StrictlyDominates reports whether a is at least as good as b everywhere
// and strictly better somewhere.
// a and b must have the same length.
func StrictlyDominates[T cmp.Ordered](a, b []T) bool {
	better := false
	for i := range b {
		if b[i] > a[i] {
			return false
		}
		if a[i] > b[i] {
			better = true
		}
	}
	return better
}

func dominanceFunc[T cmp.Ordered](r Rule) func(a, b []T) bool {
	if r == RuleStrict {
		return StrictlyDominates[T]
	}
	return Dominates[T]
}
