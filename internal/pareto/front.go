package pareto

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TieBreak decides the relative order of items that share a value on the
// reference dimension.
type TieBreak string

const (
	// TieInput keeps dataset order among ties.
	TieInput TieBreak = "input"
	// TieName orders ties by ascending name.
	TieName TieBreak = "name"
	// TieScores orders ties by the remaining dimensions, descending, then
	// dataset order. A survivor can then only be dominated by an identical
	// survivor ranked before it.
	TieScores TieBreak = "scores"
)

// Options configures the greedy front extraction.
type Options struct {
	// ReferenceIndex is the dimension used for the initial descending ranking.
	ReferenceIndex int `yaml:"reference_index" json:"reference_index" validate:"min=0"`
	// TieBreak orders items tied on the reference dimension. Empty means TieInput.
	TieBreak TieBreak `yaml:"tie_break" json:"tie_break" validate:"omitempty,oneof=input name scores"`
	// Rule is the dominance test. Empty means RuleLenient.
	Rule Rule `yaml:"rule" json:"rule" validate:"omitempty,oneof=lenient strict"`
}

// DefaultOptions ranks on dimension 0, keeps input order among ties and uses
// the lenient dominance rule.
func DefaultOptions() Options {
	return Options{ReferenceIndex: 0, TieBreak: TieInput, Rule: RuleLenient}
}

// Validate checks the option values.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Front is the set of surviving item names. It has no order.
type Front map[string]struct{}

// Has reports whether name survived.
func (f Front) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// Len returns the number of survivors.
func (f Front) Len() int { return len(f) }

// Names returns the survivors sorted by name.
func (f Front) Names() []string {
	out := make([]string, 0, len(f))
	for n := range f {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the front as a sorted array of names.
func (f Front) MarshalJSON() ([]byte, error) { return json.Marshal(f.Names()) }

// UnmarshalJSON decodes an array of names.
func (f *Front) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*f = make(Front, len(names))
	for _, n := range names {
		(*f)[n] = struct{}{}
	}
	return nil
}

// Result is the outcome of one extraction.
type Result struct {
	// Front holds the non-dominated names.
	Front Front `json:"front"`
	// Admitted lists the survivors in the order they were admitted.
	Admitted []string `json:"admitted"`
	// DominatedBy maps every excluded name to the survivor that rejected it.
	DominatedBy map[string]string `json:"dominated_by"`
}

// ExtractFront runs the greedy extraction over the raw scores of ds.
func ExtractFront(ds *Dataset, opts Options) (*Result, error) {
	if err := checkOptions(ds, opts); err != nil {
		return nil, err
	}
	return extract(ds.Names(), ds.vectors(), opts), nil
}

func checkOptions(ds *Dataset, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if ds.Len() > 0 && opts.ReferenceIndex >= ds.Dims() {
		return fmt.Errorf("%w: %d with %d dimensions", ErrReferenceIndex, opts.ReferenceIndex, ds.Dims())
	}
	return nil
}

// extract ranks names by the reference dimension, descending, and greedily
// admits every item that no current survivor dominates. names and vecs are
// aligned; their order is the traversal order for TieInput.
func extract[T cmp.Ordered](names []string, vecs [][]T, opts Options) *Result {
	res := &Result{
		Front:       make(Front),
		Admitted:    []string{},
		DominatedBy: make(map[string]string),
	}
	if len(names) == 0 {
		return res
	}

	ref := opts.ReferenceIndex
	ranked := make([]int, len(names))
	for i := range ranked {
		ranked[i] = i
	}
	slices.SortStableFunc(ranked, func(a, b int) int {
		if c := cmp.Compare(vecs[b][ref], vecs[a][ref]); c != 0 {
			return c
		}
		switch opts.TieBreak {
		case TieName:
			return strings.Compare(names[a], names[b])
		case TieScores:
			for d := range vecs[a] {
				if c := cmp.Compare(vecs[b][d], vecs[a][d]); c != 0 {
					return c
				}
			}
		}
		return 0
	})

	dominates := dominanceFunc[T](opts.Rule)
	survivors := make([]int, 0, len(names))
Outer:
	for _, i := range ranked {
		for _, s := range survivors {
			if dominates(vecs[s], vecs[i]) {
				res.DominatedBy[names[i]] = names[s]
				continue Outer
			}
		}
		survivors = append(survivors, i)
		res.Front[names[i]] = struct{}{}
		res.Admitted = append(res.Admitted, names[i])
	}
	return res
}
