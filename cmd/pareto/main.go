// Command pareto prints the non-dominated items of a tab-separated score file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MikeSquared-Agency/Pareto/internal/config"
	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/tsv"
)

func main() {
	logger, err := run(os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		logger.Error("pareto failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) (*slog.Logger, error) {
	fs := flag.NewFlagSet("pareto", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", "", "path to a tab-separated score file")
	mode := fs.String("mode", string(pareto.ModeStrict), "filter mode: strict or fuzzy")
	smoothness := fs.Int("smoothness", pareto.DefaultSmoothness, "buckets per dimension in fuzzy mode")
	rankIndex := fs.Int("rank-index", 0, "dimension used for the initial ranking")
	tie := fs.String("tie", string(pareto.TieInput), "tie order on the ranking dimension: input, name or scores")
	strict := fs.Bool("strict-dominance", false, "keep identical score vectors instead of collapsing them")
	fields := fs.Int("fields", tsv.DefaultFields, "score columns per row, -1 to use the header width")
	level := fs.String("log-level", "warn", "log level")

	logger := config.NewLogger(config.LoggingConfig{Level: *level, Format: "text"}, stderr)
	if err := fs.Parse(args); err != nil {
		return logger, err
	}
	logger = config.NewLogger(config.LoggingConfig{Level: *level, Format: "text"}, stderr)

	if *in == "" {
		return logger, fmt.Errorf("-in is required")
	}

	opts := pareto.Options{ReferenceIndex: *rankIndex, TieBreak: pareto.TieBreak(*tie), Rule: pareto.RuleLenient}
	if *strict {
		opts.Rule = pareto.RuleStrict
	}
	filter, err := pareto.NewFilter(pareto.Mode(*mode), opts, *smoothness)
	if err != nil {
		return logger, err
	}

	table, err := tsv.ReadFile(*in, tsv.ReadOptions{Fields: *fields})
	if err != nil {
		return logger, err
	}
	logger.Debug("loaded scores", "path", *in, "items", table.Dataset.Len(), "dimensions", table.Header)

	res, err := filter.Filter(table.Dataset)
	if err != nil {
		return logger, err
	}
	logger.Info("front extracted",
		"mode", filter.Mode(),
		"items", table.Dataset.Len(),
		"front", res.Front.Len(),
	)

	return logger, tsv.Write(stdout, table.Dataset, res.Admitted)
}
