package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

type ExplainedItem struct {
	Name    string        `json:"name"`
	Scores  pareto.Scores `json:"scores"`
	Buckets []int         `json:"buckets,omitempty"`
}

type ExcludedItem struct {
	ExplainedItem
	DominatedBy string `json:"dominated_by"`
}

// Explanation lists the survivors in admission order and, for every other
// item, the survivor that rejected it. Buckets are filled for fuzzy runs.
type Explanation struct {
	RunID    uuid.UUID       `json:"run_id"`
	Mode     string          `json:"mode"`
	Labels   []string        `json:"labels"`
	Front    []ExplainedItem `json:"front"`
	Excluded []ExcludedItem  `json:"excluded"`
}

func (e *Engine) Explain(ctx context.Context, runID uuid.UUID) (*Explanation, error) {
	run, err := e.store.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	if run.Status != store.RunCompleted {
		return nil, fmt.Errorf("%w: status %s", ErrRunNotCompleted, run.Status)
	}

	rec, err := e.store.GetDataset(ctx, run.DatasetID)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if rec == nil {
		return nil, ErrDatasetNotFound
	}
	ds, err := rec.ToPareto()
	if err != nil {
		return nil, err
	}

	buckets := map[string][]int{}
	if pareto.Mode(run.Mode) == pareto.ModeFuzzy {
		q, err := pareto.Quantize(ds, run.Smoothness)
		if err != nil {
			return nil, err
		}
		for i, name := range ds.Names() {
			buckets[name] = q[i]
		}
	}

	item := func(name string) ExplainedItem {
		scores, _ := ds.Get(name)
		return ExplainedItem{Name: name, Scores: scores, Buckets: buckets[name]}
	}

	out := &Explanation{
		RunID:    run.ID,
		Mode:     run.Mode,
		Labels:   rec.Labels,
		Front:    make([]ExplainedItem, 0, len(run.Admitted)),
		Excluded: make([]ExcludedItem, 0, len(run.DominatedBy)),
	}
	for _, name := range run.Admitted {
		out.Front = append(out.Front, item(name))
	}
	for _, name := range ds.Names() {
		if by, ok := run.DominatedBy[name]; ok {
			out.Excluded = append(out.Excluded, ExcludedItem{ExplainedItem: item(name), DominatedBy: by})
		}
	}
	return out, nil
}
