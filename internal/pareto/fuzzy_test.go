package pareto

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCeilings(t *testing.T) {
	ds := mustDataset(t,
		Datum{"a", Scores{1, 9, 0}},
		Datum{"b", Scores{4, 2, 0.5}},
	)
	assert.Equal(t, Scores{4, 9, 0.5}, Ceilings(ds))
	assert.Empty(t, Ceilings(mustDataset(t)))
}

func TestQuantize(t *testing.T) {
	ds := mustDataset(t,
		Datum{"top", Scores{200, 10}},
		Datum{"half", Scores{100, 5}},
		Datum{"edge", Scores{50, 0.5}},
		Datum{"zero", Scores{0, 0}},
	)

	q, err := Quantize(ds, 10)
	require.NoError(t, err)
	assert.Equal(t, []Quantized{
		{10, 10},
		{5, 5},
		{3, 1}, // 2.5 and 0.5 round half up
		{0, 0},
	}, q)

	q, err = Quantize(ds, 1)
	require.NoError(t, err)
	assert.Equal(t, Quantized{1, 1}, q[1], "exactly half rounds up")
	assert.Equal(t, Quantized{0, 0}, q[2])
}

func TestQuantizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		items      []Datum
		smoothness int
		wantErr    error
	}{
		{"zero smoothness", []Datum{{"a", Scores{1}}}, 0, ErrInvalidSmoothness},
		{"negative smoothness", []Datum{{"a", Scores{1}}}, -3, ErrInvalidSmoothness},
		{"smoothness above max", []Datum{{"a", Scores{1}}}, MaxSmoothness + 1, ErrInvalidSmoothness},
		{"smoothness max int", []Datum{{"a", Scores{1}}}, math.MaxInt, ErrInvalidSmoothness},
		{"all-zero column", []Datum{{"a", Scores{1, 0}}, {"b", Scores{2, 0}}}, 10, ErrZeroCeiling},
		{"all-negative column", []Datum{{"a", Scores{-1}}, {"b", Scores{-2}}}, 10, ErrZeroCeiling},
		{"negative score", []Datum{{"a", Scores{1}}, {"b", Scores{-2}}}, 10, ErrNegativeScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Quantize(mustDataset(t, tt.items...), tt.smoothness)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestQuantizeAtMaxSmoothness(t *testing.T) {
	ds := mustDataset(t, Datum{"big", Scores{10, 10}}, Datum{"small", Scores{1, 1}})

	q, err := Quantize(ds, MaxSmoothness)
	require.NoError(t, err)
	assert.Equal(t, []Quantized{{MaxSmoothness, MaxSmoothness}, {MaxSmoothness / 10, MaxSmoothness / 10}}, q)

	res, err := ExtractFuzzyFront(ds, DefaultOptions(), MaxSmoothness)
	require.NoError(t, err)
	assert.Equal(t, []string{"big"}, res.Front.Names())
	assert.Equal(t, "big", res.DominatedBy["small"])
}

func TestExtractFuzzyFront_CollapsesNearTies(t *testing.T) {
	ds := sampleDataset(t)
	lowExcluded := []string{"datum1_winner", "datum4_winner", "datum268", "datum490"}

	for _, s := range []int{1, 2} {
		res, err := ExtractFuzzyFront(ds, DefaultOptions(), s)
		require.NoError(t, err)
		assert.Equal(t, []string{"datum1922", "datum3_winner"}, res.Front.Names(), "smoothness %d", s)
		for _, name := range lowExcluded {
			assert.False(t, res.Front.Has(name), "%s should collapse at smoothness %d", name, s)
		}
	}

	res, err := ExtractFuzzyFront(ds, DefaultOptions(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"datum1922", "datum1_winner", "datum3_winner", "datum5_winner"}, res.Front.Names())
	assert.Equal(t, "datum3_winner", res.DominatedBy["datum2_winner"])
	assert.Equal(t, "datum1_winner", res.DominatedBy["datum268"])
	assert.Equal(t, "datum1922", res.DominatedBy["datum490"])
}

func TestExtractFuzzyFront_NameTieBreak(t *testing.T) {
	ds := sampleDataset(t)
	opts := Options{TieBreak: TieName}

	res, err := ExtractFuzzyFront(ds, opts, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"datum1922", "datum2_winner", "datum3_winner"}, res.Front.Names())

	res, err = ExtractFuzzyFront(ds, opts, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"datum1922", "datum1_winner", "datum2_winner", "datum3_winner", "datum5_winner"}, res.Front.Names())
}

func TestExtractFuzzyFront_ConvergesToStrict(t *testing.T) {
	ds := sampleDataset(t)
	strict, err := ExtractFront(ds, DefaultOptions())
	require.NoError(t, err)

	prev := 0
	for _, s := range []int{1, 10, 100, 1000} {
		res, err := ExtractFuzzyFront(ds, DefaultOptions(), s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Front.Len(), prev, "smoothness %d", s)
		prev = res.Front.Len()
	}

	res, err := ExtractFuzzyFront(ds, DefaultOptions(), 1000)
	require.NoError(t, err)
	assert.Equal(t, strict.Front.Names(), res.Front.Names())
}

func TestExtractFuzzyFront_ZeroColumn(t *testing.T) {
	ds := mustDataset(t,
		Datum{"a", Scores{1, 0}},
		Datum{"b", Scores{2, 0}},
	)
	_, err := ExtractFuzzyFront(ds, DefaultOptions(), 10)
	assert.True(t, errors.Is(err, ErrZeroCeiling))

	// The strict filter has no such precondition.
	res, err := ExtractFront(ds, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, res.Front.Names())
}

func TestExtractFuzzyFront_Empty(t *testing.T) {
	res, err := ExtractFuzzyFront(mustDataset(t), DefaultOptions(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Front.Len())
}
