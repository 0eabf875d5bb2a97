// Package pareto extracts the Pareto non-dominated subset of named score
// vectors, where a higher score is better on every dimension.
//
// Two filters share one greedy procedure:
//
//   - StrictFilter compares raw scores.
//   - FuzzyFilter first normalizes every dimension by its maximum observed
//     value and quantizes it onto [0, smoothness], so differences smaller
//     than one bucket count as ties and the surviving set shrinks.
//
// The greedy pass ranks items by a reference dimension (descending), then
// admits each item unless a survivor already dominates it. Survivors are
// admitted immediately, so later items are tested against them too.
//
// Under the default RuleLenient, two identical vectors dominate each other:
// whichever is ranked first survives and the other is excluded. Ties on the
// reference dimension keep dataset order (TieInput) unless TieName is set.
//
// Cost is O(n²) dominance tests in the worst case, which is fine for the
// hundreds-to-thousands of items this package is meant for.
package pareto
