package pareto

import (
	"fmt"
	"math"
	"slices"
)

// Scores is a fixed-length vector of scores. Higher is better on every index
// and indices are distinct dimensions, not interchangeable.
type Scores []float64

// Datum is a named item carrying one score vector.
type Datum struct {
	Name   string `json:"name" validate:"required"`
	Scores Scores `json:"scores" validate:"required,min=1"`
}

// Dataset is an ordered, validated set of datums that all share the same
// dimension count. It is never mutated after construction, so it can be
// read from several goroutines at once.
type Dataset struct {
	items []Datum
	index map[string]int
	dims  int
}

// NewDataset validates items and returns a Dataset that preserves their
// order. That order is the traversal order used to break ranking ties.
func NewDataset(items []Datum) (*Dataset, error) {
	ds := &Dataset{
		items: make([]Datum, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for i, d := range items {
		if d.Name == "" {
			return nil, fmt.Errorf("datum %d: %w", i, ErrEmptyName)
		}
		if _, ok := ds.index[d.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, d.Name)
		}
		if len(d.Scores) == 0 {
			return nil, fmt.Errorf("datum %s: %w", d.Name, ErrNoDimensions)
		}
		if i == 0 {
			ds.dims = len(d.Scores)
		} else if len(d.Scores) != ds.dims {
			return nil, fmt.Errorf("%w: %s has %d scores, expected %d",
				ErrDimensionMismatch, d.Name, len(d.Scores), ds.dims)
		}
		for j, v := range d.Scores {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("datum %s score %d: %w", d.Name, j, ErrNonFinite)
			}
		}
		ds.index[d.Name] = len(ds.items)
		ds.items = append(ds.items, Datum{Name: d.Name, Scores: slices.Clone(d.Scores)})
	}
	return ds, nil
}

// FromMap builds a Dataset from a name-to-scores mapping. Map iteration order
// is random in Go, so the datums are ordered by name to keep results
// reproducible.
func FromMap(m map[string]Scores) (*Dataset, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	items := make([]Datum, 0, len(names))
	for _, name := range names {
		items = append(items, Datum{Name: name, Scores: m[name]})
	}
	return NewDataset(items)
}

// Len returns the number of datums.
func (ds *Dataset) Len() int { return len(ds.items) }

// Dims returns the shared vector length, or 0 for an empty dataset.
func (ds *Dataset) Dims() int { return ds.dims }

// Items returns a copy of the datums in dataset order.
func (ds *Dataset) Items() []Datum {
	out := make([]Datum, len(ds.items))
	for i, d := range ds.items {
		out[i] = Datum{Name: d.Name, Scores: slices.Clone(d.Scores)}
	}
	return out
}

// Names returns the datum names in dataset order.
func (ds *Dataset) Names() []string {
	out := make([]string, len(ds.items))
	for i, d := range ds.items {
		out[i] = d.Name
	}
	return out
}

// Get returns a copy of the scores stored under name.
func (ds *Dataset) Get(name string) (Scores, bool) {
	i, ok := ds.index[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(ds.items[i].Scores), true
}

// Subset returns a new Dataset holding only the named datums, in dataset
// order. Unknown names are ignored.
func (ds *Dataset) Subset(names []string) *Dataset {
	keep := make(map[string]struct{}, len(names))
	for _, n := range names {
		keep[n] = struct{}{}
	}
	sub := &Dataset{index: make(map[string]int, len(keep))}
	for _, d := range ds.items {
		if _, ok := keep[d.Name]; !ok {
			continue
		}
		sub.index[d.Name] = len(sub.items)
		sub.items = append(sub.items, d)
	}
	if len(sub.items) > 0 {
		sub.dims = ds.dims
	}
	return sub
}

// vectors returns the raw score vectors aligned with the dataset order.
func (ds *Dataset) vectors() [][]float64 {
	out := make([][]float64, len(ds.items))
	for i, d := range ds.items {
		out[i] = d.Scores
	}
	return out
}
