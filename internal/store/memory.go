package store

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process memory. It backs the service when
// no database is configured and is used by tests.
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[uuid.UUID]*Dataset
	runs     map[uuid.UUID]*Run
	now      func() time.Time
	last     time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		datasets: make(map[uuid.UUID]*Dataset),
		runs:     make(map[uuid.UUID]*Run),
		now:      time.Now,
	}
}

func (s *MemoryStore) CreateDataset(_ context.Context, ds *Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds.ID = uuid.New()
	ds.CreatedAt = s.stamp()
	if ds.Labels == nil {
		ds.Labels = []string{}
	}
	s.datasets[ds.ID] = copyDataset(ds)
	return nil
}

func (s *MemoryStore) GetDataset(_ context.Context, id uuid.UUID) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, nil
	}
	return copyDataset(ds), nil
}

func (s *MemoryStore) ListDatasets(_ context.Context, limit, offset int) ([]*DatasetSummary, error) {
	s.mu.RLock()
	all := make([]*DatasetSummary, 0, len(s.datasets))
	for _, ds := range s.datasets {
		all = append(all, &DatasetSummary{
			ID:        ds.ID,
			Name:      ds.Name,
			Labels:    slices.Clone(ds.Labels),
			ItemCount: len(ds.Items),
			CreatedAt: ds.CreatedAt,
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (s *MemoryStore) DeleteDataset(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[id]; !ok {
		return ErrNotFound
	}
	delete(s.datasets, id)
	for rid, r := range s.runs {
		if r.DatasetID == id {
			delete(s.runs, rid)
		}
	}
	return nil
}

func (s *MemoryStore) CreateRun(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.datasets[run.DatasetID]; !ok {
		return ErrNotFound
	}
	run.ID = uuid.New()
	run.CreatedAt = s.stamp()
	if run.Status == "" {
		run.Status = RunPending
	}
	s.runs[run.ID] = copyRun(run)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id uuid.UUID) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, nil
	}
	return copyRun(r), nil
}

func (s *MemoryStore) UpdateRun(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.runs[run.ID]
	if !ok {
		return ErrNotFound
	}
	next := copyRun(run)
	next.DatasetID = cur.DatasetID
	next.CreatedAt = cur.CreatedAt
	s.runs[run.ID] = next
	return nil
}

func (s *MemoryStore) ListRuns(_ context.Context, filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	var out []*Run
	for _, r := range s.runs {
		if filter.DatasetID != nil && r.DatasetID != *filter.DatasetID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, copyRun(r))
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, filter.Limit, filter.Offset), nil
}

func (s *MemoryStore) GetPendingRuns(_ context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	var out []*Run
	for _, r := range s.runs {
		if r.Status == RunPending {
			out = append(out, copyRun(r))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, limit, 0), nil
}

func (s *MemoryStore) GetStats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{TotalDatasets: len(s.datasets)}
	var total int64
	for _, r := range s.runs {
		switch r.Status {
		case RunPending:
			stats.TotalPending++
		case RunCompleted:
			stats.TotalCompleted++
			total += r.DurationMs
		case RunFailed:
			stats.TotalFailed++
		}
	}
	if stats.TotalCompleted > 0 {
		stats.AvgDurationMs = float64(total) / float64(stats.TotalCompleted)
	}
	return stats, nil
}

// stamp returns a creation time strictly after the previous one so that
// listings have a stable order. Callers hold mu.
func (s *MemoryStore) stamp() time.Time {
	t := s.now()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func page[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if l := limitOrDefault(limit); l < len(in) {
		in = in[:l]
	}
	return in
}

func copyDataset(ds *Dataset) *Dataset {
	out := *ds
	out.Labels = slices.Clone(ds.Labels)
	out.Items = make([]Item, len(ds.Items))
	for i, it := range ds.Items {
		out.Items[i] = Item{Name: it.Name, Scores: slices.Clone(it.Scores)}
	}
	return &out
}

func copyRun(r *Run) *Run {
	out := *r
	out.Front = slices.Clone(r.Front)
	out.Admitted = slices.Clone(r.Admitted)
	if r.DominatedBy != nil {
		out.DominatedBy = make(map[string]string, len(r.DominatedBy))
		for k, v := range r.DominatedBy {
			out.DominatedBy[k] = v
		}
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		out.CompletedAt = &t
	}
	return &out
}
