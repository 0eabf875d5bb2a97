package pareto

import (
	"fmt"
	"math"
)

// DefaultSmoothness is the number of buckets per dimension used when none
// is configured. At 10, scores must differ by roughly a tenth of the
// dimension maximum to count as better.
const DefaultSmoothness = 10

// MaxSmoothness bounds the bucket count so that every bucket fits in an int.
const MaxSmoothness = 1 << 30

// Quantized is a score vector mapped onto integer buckets in [0, smoothness].
type Quantized []int

// Ceilings returns the per-dimension maximum across ds.
func Ceilings(ds *Dataset) Scores {
	if ds.Len() == 0 {
		return Scores{}
	}
	hi := make(Scores, ds.Dims())
	for i := range hi {
		hi[i] = math.Inf(-1)
	}
	for _, d := range ds.items {
		for i, v := range d.Scores {
			if v > hi[i] {
				hi[i] = v
			}
		}
	}
	return hi
}

// Quantize normalizes every score by its dimension maximum and rounds
// value/max*smoothness half up to the nearest integer. The result is
// aligned with the dataset order.
//
// Every dimension needs at least one positive value and no score may be
// negative; both are reported as errors instead of producing NaN buckets.
func Quantize(ds *Dataset, smoothness int) ([]Quantized, error) {
	if err := checkSmoothness(smoothness); err != nil {
		return nil, err
	}
	hi := Ceilings(ds)
	for i, h := range hi {
		if h <= 0 {
			return nil, fmt.Errorf("%w: dimension %d", ErrZeroCeiling, i)
		}
	}

	out := make([]Quantized, ds.Len())
	for n, d := range ds.items {
		q := make(Quantized, len(d.Scores))
		for i, v := range d.Scores {
			if v < 0 {
				return nil, fmt.Errorf("%w: %s dimension %d", ErrNegativeScore, d.Name, i)
			}
			q[i] = roundHalfUp(v / hi[i] * float64(smoothness))
		}
		out[n] = q
	}
	return out, nil
}

func checkSmoothness(smoothness int) error {
	if smoothness < 1 || smoothness > MaxSmoothness {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidSmoothness, smoothness, MaxSmoothness)
	}
	return nil
}

func roundHalfUp(x float64) int { return int(math.Floor(x + 0.5)) }

// ExtractFuzzyFront quantizes ds at the given smoothness and runs the greedy
// extraction over the buckets. Ranking uses the quantized reference
// dimension, so near-equal raw values are ties.
func ExtractFuzzyFront(ds *Dataset, opts Options, smoothness int) (*Result, error) {
	if err := checkOptions(ds, opts); err != nil {
		return nil, err
	}
	q, err := Quantize(ds, smoothness)
	if err != nil {
		return nil, err
	}
	vecs := make([][]int, len(q))
	for i := range q {
		vecs[i] = q[i]
	}
	return extract(ds.Names(), vecs, opts), nil
}
