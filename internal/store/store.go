package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
)

var ErrNotFound = errors.New("not found")

type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

type Item struct {
	Name   string    `json:"name" validate:"required"`
	Scores []float64 `json:"scores" validate:"required,min=1"`
}

// Dataset is a stored, named set of scored items. Items keep upload order,
// which is the order ranking ties fall back to.
type Dataset struct {
	ID        uuid.UUID `json:"dataset_id"`
	Name      string    `json:"name"`
	Labels    []string  `json:"labels"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPareto validates the items and builds the in-memory dataset used by the
// filters.
func (d *Dataset) ToPareto() (*pareto.Dataset, error) {
	items := make([]pareto.Datum, len(d.Items))
	for i, it := range d.Items {
		items[i] = pareto.Datum{Name: it.Name, Scores: it.Scores}
	}
	return pareto.NewDataset(items)
}

// ItemsFromPareto converts a pareto dataset into storable items.
func ItemsFromPareto(ds *pareto.Dataset) []Item {
	src := ds.Items()
	out := make([]Item, len(src))
	for i, d := range src {
		out[i] = Item{Name: d.Name, Scores: d.Scores}
	}
	return out
}

type DatasetSummary struct {
	ID        uuid.UUID `json:"dataset_id"`
	Name      string    `json:"name"`
	Labels    []string  `json:"labels"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

type Run struct {
	ID        uuid.UUID `json:"run_id"`
	DatasetID uuid.UUID `json:"dataset_id"`

	// Parameters
	Mode            string `json:"mode"`
	ReferenceIndex  int    `json:"reference_index"`
	Smoothness      int    `json:"smoothness,omitempty"`
	TieBreak        string `json:"tie_break"`
	StrictDominance bool   `json:"strict_dominance"`

	// State
	Status RunStatus `json:"status"`
	Error  string    `json:"error,omitempty"`

	// Result
	Front       []string          `json:"front,omitempty"`
	Admitted    []string          `json:"admitted,omitempty"`
	DominatedBy map[string]string `json:"dominated_by,omitempty"`
	DurationMs  int64             `json:"duration_ms"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type RunFilter struct {
	DatasetID *uuid.UUID
	Status    *RunStatus
	Limit     int
	Offset    int
}

type Stats struct {
	TotalDatasets  int     `json:"total_datasets"`
	TotalPending   int     `json:"total_pending"`
	TotalCompleted int     `json:"total_completed"`
	TotalFailed    int     `json:"total_failed"`
	AvgDurationMs  float64 `json:"avg_duration_ms"`
}

// Store persists datasets and runs. Get methods return (nil, nil) when the
// record does not exist.
type Store interface {
	CreateDataset(ctx context.Context, ds *Dataset) error
	GetDataset(ctx context.Context, id uuid.UUID) (*Dataset, error)
	ListDatasets(ctx context.Context, limit, offset int) ([]*DatasetSummary, error)
	DeleteDataset(ctx context.Context, id uuid.UUID) error

	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	UpdateRun(ctx context.Context, run *Run) error
	ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
	GetPendingRuns(ctx context.Context, limit int) ([]*Run, error)

	GetStats(ctx context.Context) (*Stats, error)
	Ping(ctx context.Context) error
	Close() error
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
