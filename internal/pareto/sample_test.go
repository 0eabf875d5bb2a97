package pareto

import "testing"

// sampleItems mirrors internal/tsv/testdata/pareto_example_scores.txt: nine
// front members followed by dominated filler rows.
var sampleItems = []Datum{
	{"datum3_winner", Scores{806.411, 782.751, 1671.403, 1014.266}},
	{"datum2_winner", Scores{831.263, 39.031, 1023.151, 1418.738}},
	{"datum268", Scores{16.503, 15.505, 19.59, 46050.783}},
	{"datum1_winner", Scores{51.123, 187.342, 1290.674, 36769.698}},
	{"datum5_winner", Scores{302.505, 150.483, 1952.222, 1119.167}},
	{"datum4_winner", Scores{209.139, 812.053, 1042.86, 3307.762}},
	{"datum1922", Scores{1.037, 14.427, 13.566, 437904.174}},
	{"datum490", Scores{7.952, 5.648, 12.075, 90505.479}},
	{"datum934", Scores{15.839, 11.557, 16.696, 68278.517}},
	{"datum11", Scores{0.712, 0.338, 1.774, 12.901}},
	{"datum12", Scores{6.215, 9.871, 4.552, 2.208}},
	{"datum13", Scores{14.101, 3.096, 15.302, 21.447}},
	{"datum14", Scores{2.877, 12.640, 8.119, 1.603}},
	{"datum15", Scores{9.434, 0.923, 0.481, 45.876}},
	{"datum16", Scores{0.118, 7.004, 11.930, 5.312}},
	{"datum17", Scores{12.556, 13.721, 3.665, 30.045}},
	{"datum18", Scores{4.803, 2.419, 6.987, 8.774}},
}

var sampleStrictFront = []string{
	"datum1922", "datum1_winner", "datum268", "datum2_winner", "datum3_winner",
	"datum490", "datum4_winner", "datum5_winner", "datum934",
}

func sampleDataset(t testing.TB) *Dataset {
	t.Helper()
	ds, err := NewDataset(sampleItems)
	if err != nil {
		t.Fatalf("sample dataset: %v", err)
	}
	return ds
}
