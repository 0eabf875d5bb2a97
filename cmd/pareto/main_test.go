package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "../../internal/tsv/testdata/pareto_example_scores.txt"

func TestRun_Strict(t *testing.T) {
	var out, errOut bytes.Buffer
	_, err := run([]string{"-in", sample}, &out, &errOut)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "datum2_winner: 831.263, 39.031, 1023.151, 1418.738", lines[0])
	assert.Equal(t, "datum1922: 1.037, 14.427, 13.566, 437904.174", lines[8])
}

func TestRun_Fuzzy(t *testing.T) {
	var out, errOut bytes.Buffer
	_, err := run([]string{"-in", sample, "-mode", "fuzzy", "-smoothness", "1"}, &out, &errOut)
	require.NoError(t, err)

	assert.Equal(t,
		"datum3_winner: 806.411, 782.751, 1671.403, 1014.266\n"+
			"datum1922: 1.037, 14.427, 13.566, 437904.174\n",
		out.String())
}

func TestRun_Errors(t *testing.T) {
	tests := [][]string{
		{},
		{"-in", "missing.txt"},
		{"-in", sample, "-mode", "skyline"},
		{"-in", sample, "-mode", "fuzzy", "-smoothness", "0"},
		{"-in", sample, "-rank-index", "4"},
		{"-in", sample, "-tie", "random"},
		{"-bogus"},
	}
	for _, args := range tests {
		var out, errOut bytes.Buffer
		_, err := run(args, &out, &errOut)
		assert.Error(t, err, "args %v", args)
		assert.Empty(t, out.String())
	}
}
