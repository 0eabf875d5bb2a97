package pareto

import "testing"

func TestDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want bool
	}{
		{"a better everywhere", []float64{10, 10}, []float64{1, 1}, true},
		{"b better on one dimension", []float64{10, 10}, []float64{5, 20}, false},
		{"b better everywhere", []float64{1, 1}, []float64{10, 10}, false},
		{"a ties and wins once", []float64{10, 5}, []float64{10, 4}, true},
		{"identical vectors", []float64{10, 10}, []float64{10, 10}, true},
		{"empty vectors", []float64{}, []float64{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dominates(tt.a, tt.b); got != tt.want {
				t.Errorf("Dominates(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDominatesIdenticalIsMutual(t *testing.T) {
	a := []int{3, 7, 1}
	b := []int{3, 7, 1}
	if !Dominates(a, b) || !Dominates(b, a) {
		t.Error("identical vectors should dominate each other under the lenient rule")
	}
	if StrictlyDominates(a, b) || StrictlyDominates(b, a) {
		t.Error("identical vectors should not strictly dominate each other")
	}
}

func TestStrictlyDominates(t *testing.T) {
	tests := []struct {
		name string
		a, b []int
		want bool
	}{
		{"better everywhere", []int{2, 2}, []int{1, 1}, true},
		{"equal except one", []int{2, 1}, []int{1, 1}, true},
		{"identical", []int{1, 1}, []int{1, 1}, false},
		{"trade-off", []int{2, 0}, []int{0, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrictlyDominates(tt.a, tt.b); got != tt.want {
				t.Errorf("StrictlyDominates(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDominanceFuncSelectsRule(t *testing.T) {
	same := []float64{4, 4}
	if !dominanceFunc[float64](RuleLenient)(same, same) {
		t.Error("lenient rule should report identical vectors as dominated")
	}
	if !dominanceFunc[float64]("")(same, same) {
		t.Error("empty rule should default to lenient")
	}
	if dominanceFunc[float64](RuleStrict)(same, same) {
		t.Error("strict rule should not report identical vectors as dominated")
	}
}
