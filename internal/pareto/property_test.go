package pareto

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// randomDataset builds n items of dims scores. With coarse set, scores are
// small integers so ties are frequent.
func randomDataset(r *rand.Rand, n, dims int, coarse bool) *Dataset {
	items := make([]Datum, n)
	for i := range items {
		s := make(Scores, dims)
		for d := range s {
			if coarse {
				s[d] = float64(r.Intn(4))
			} else {
				s[d] = r.Float64() * 100
			}
		}
		items[i] = Datum{Name: fmt.Sprintf("datum%d", i), Scores: s}
	}
	ds, err := NewDataset(items)
	if err != nil {
		panic(err)
	}
	return ds
}

func checkFrontProperties(t *testing.T, name string, opts Options, coarse bool, pairwise bool) {
	t.Run(name, func(t *testing.T) {
		err := quick.Check(func(seed int64) bool {
			r := rand.New(rand.NewSource(seed))
			ds := randomDataset(r, 1+r.Intn(40), 1+r.Intn(4), coarse)
			res, err := ExtractFront(ds, opts)
			if err != nil {
				return false
			}

			// Subset of the input, and every input name is either kept or explained.
			for name := range res.Front {
				if _, ok := ds.Get(name); !ok {
					return false
				}
			}
			if res.Front.Len()+len(res.DominatedBy) != ds.Len() {
				return false
			}

			// Every excluded item is dominated by a survivor.
			for loser, winner := range res.DominatedBy {
				if !res.Front.Has(winner) {
					return false
				}
				w, _ := ds.Get(winner)
				l, _ := ds.Get(loser)
				if !Dominates(w, l) {
					return false
				}
			}

			// No survivor dominates another, identical vectors aside.
			if pairwise {
				for _, a := range res.Admitted {
					for _, b := range res.Admitted {
						if a == b {
							continue
						}
						va, _ := ds.Get(a)
						vb, _ := ds.Get(b)
						if Dominates(va, vb) && !slices.Equal(va, vb) {
							return false
						}
					}
				}
			}

			// Idempotence.
			again, err := ExtractFront(ds.Subset(res.Admitted), opts)
			if err != nil {
				return false
			}
			return slices.Equal(again.Front.Names(), res.Front.Names())
		}, &quick.Config{MaxCount: 300})
		assert.NoError(t, err)
	})
}

func TestExtractFrontProperties(t *testing.T) {
	checkFrontProperties(t, "continuous scores", DefaultOptions(), false, true)
	checkFrontProperties(t, "coarse scores ordered by scores", Options{TieBreak: TieScores}, true, true)
	checkFrontProperties(t, "coarse scores in input order", DefaultOptions(), true, false)
	checkFrontProperties(t, "coarse scores by name", Options{TieBreak: TieName}, true, false)
}

func TestFuzzyFrontIsSubsetAndExplained(t *testing.T) {
	err := quick.Check(func(seed int64, smooth uint8) bool {
		r := rand.New(rand.NewSource(seed))
		ds := randomDataset(r, 1+r.Intn(40), 1+r.Intn(4), false)
		res, err := ExtractFuzzyFront(ds, DefaultOptions(), 1+int(smooth%50))
		if err != nil {
			return errors.Is(err, ErrZeroCeiling)
		}
		for loser, winner := range res.DominatedBy {
			if !res.Front.Has(winner) || res.Front.Has(loser) {
				return false
			}
		}
		return res.Front.Len()+len(res.DominatedBy) == ds.Len()
	}, &quick.Config{MaxCount: 300})
	assert.NoError(t, err)
}
