package pareto

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	tests := []struct {
		name    string
		items   []Datum
		wantErr error
	}{
		{"empty", nil, nil},
		{"single", []Datum{{"a", Scores{1, 2}}}, nil},
		{"mismatched lengths", []Datum{{"a", Scores{1, 2}}, {"b", Scores{1}}}, ErrDimensionMismatch},
		{"duplicate names", []Datum{{"a", Scores{1}}, {"a", Scores{2}}}, ErrDuplicateName},
		{"empty name", []Datum{{"", Scores{1}}}, ErrEmptyName},
		{"empty vector", []Datum{{"a", Scores{}}}, ErrNoDimensions},
		{"NaN score", []Datum{{"a", Scores{math.NaN()}}}, ErrNonFinite},
		{"infinite score", []Datum{{"a", Scores{math.Inf(1)}}}, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDataset(tt.items)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.items), ds.Len())
		})
	}
}

func TestDatasetDoesNotAliasInput(t *testing.T) {
	scores := Scores{1, 2, 3}
	ds, err := NewDataset([]Datum{{"a", scores}})
	require.NoError(t, err)

	scores[0] = 99
	got, ok := ds.Get("a")
	require.True(t, ok)
	assert.Equal(t, Scores{1, 2, 3}, got)

	got[1] = 42
	again, _ := ds.Get("a")
	assert.Equal(t, 2.0, again[1])
}

func TestDatasetAccessors(t *testing.T) {
	ds := sampleDataset(t)
	assert.Equal(t, 17, ds.Len())
	assert.Equal(t, 4, ds.Dims())
	assert.Equal(t, "datum3_winner", ds.Names()[0])
	assert.Equal(t, "datum18", ds.Items()[16].Name)

	_, ok := ds.Get("missing")
	assert.False(t, ok)

	empty, err := NewDataset(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Dims())
}

func TestFromMapOrdersByName(t *testing.T) {
	ds, err := FromMap(map[string]Scores{
		"charlie": {1},
		"alpha":   {2},
		"bravo":   {3},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, ds.Names())
}

func TestSubset(t *testing.T) {
	ds := sampleDataset(t)
	sub := ds.Subset([]string{"datum934", "datum3_winner", "nope"})
	assert.Equal(t, []string{"datum3_winner", "datum934"}, sub.Names())
	assert.Equal(t, 4, sub.Dims())

	none := ds.Subset(nil)
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, 0, none.Dims())
}
