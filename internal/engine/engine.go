// Package engine runs front extractions for the service: synchronously for
// API callers and from a background loop for queued runs.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MikeSquared-Agency/Pareto/internal/config"
	"github.com/MikeSquared-Agency/Pareto/internal/hermes"
	"github.com/MikeSquared-Agency/Pareto/internal/metrics"
	"github.com/MikeSquared-Agency/Pareto/internal/pareto"
	"github.com/MikeSquared-Agency/Pareto/internal/store"
)

var (
	ErrInvalidSpec     = errors.New("invalid run spec")
	ErrTooManyItems    = errors.New("dataset exceeds item limit")
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrRunNotFound     = errors.New("run not found")
	ErrRunNotCompleted = errors.New("run has not completed")
)

const statsInterval = 30 * time.Second

type Engine struct {
	store   store.Store
	hermes  hermes.Client
	metrics *metrics.Metrics
	tracer  trace.Tracer
	cfg     *config.Config
	logger  *slog.Logger

	statsInterval time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New builds an Engine. h and m may be nil.
func New(s store.Store, h hermes.Client, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		store:         s,
		hermes:        h,
		metrics:       m,
		tracer:        otel.Tracer("github.com/MikeSquared-Agency/Pareto/internal/engine"),
		cfg:           cfg,
		logger:        logger,
		statsInterval: statsInterval,
		stopCh:        make(chan struct{}),
	}
}

func (e *Engine) Start(ctx context.Context) {
	e.wg.Add(2)
	go e.runLoop(ctx)
	go e.statsLoop(ctx)
}

func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
	e.wg.Wait()
}

// Compute extracts the front of ds without touching the store.
func (e *Engine) Compute(ctx context.Context, ds *pareto.Dataset, spec RunSpec) (*pareto.Result, error) {
	p, err := e.Resolve(spec)
	if err != nil {
		return nil, err
	}
	return e.compute(ctx, ds, p)
}

func (e *Engine) compute(ctx context.Context, ds *pareto.Dataset, p Params) (*pareto.Result, error) {
	if ds.Len() > e.cfg.Filter.MaxItems {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyItems, ds.Len(), e.cfg.Filter.MaxItems)
	}

	_, span := e.tracer.Start(ctx, "pareto.compute", trace.WithAttributes(
		attribute.String("pareto.mode", string(p.Mode)),
		attribute.Int("pareto.items", ds.Len()),
		attribute.Int("pareto.dimensions", ds.Dims()),
		attribute.Int("pareto.reference_index", p.Options.ReferenceIndex),
		attribute.Int("pareto.smoothness", p.Smoothness),
	))
	defer span.End()

	filter, err := pareto.NewFilter(p.Mode, p.Options, p.Smoothness)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	start := time.Now()
	res, err := filter.Filter(ds)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.metrics.ObserveFailure(string(p.Mode))
		return nil, err
	}

	span.SetAttributes(attribute.Int("pareto.front_size", res.Front.Len()))
	e.metrics.ObserveRun(string(p.Mode), ds.Len(), res.Front.Len(), elapsed)
	return res, nil
}

// CreateDataset stores ds under name and announces it.
func (e *Engine) CreateDataset(ctx context.Context, name string, labels []string, ds *pareto.Dataset) (*store.Dataset, error) {
	if ds.Len() > e.cfg.Filter.MaxItems {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyItems, ds.Len(), e.cfg.Filter.MaxItems)
	}
	rec := &store.Dataset{
		Name:   name,
		Labels: labels,
		Items:  store.ItemsFromPareto(ds),
	}
	if err := e.store.CreateDataset(ctx, rec); err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}

	e.logger.Info("dataset created", "dataset_id", rec.ID, "name", rec.Name, "items", len(rec.Items))
	if e.hermes != nil {
		_ = e.hermes.Publish(hermes.SubjectDatasetCreated(rec.ID.String()), hermes.DatasetCreatedEvent{
			DatasetID: rec.ID.String(),
			Name:      rec.Name,
			Labels:    rec.Labels,
			Items:     len(rec.Items),
		})
	}
	return rec, nil
}

func (e *Engine) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	if err := e.store.DeleteDataset(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDatasetNotFound
		}
		return err
	}
	if e.hermes != nil {
		_ = e.hermes.Publish(hermes.SubjectDatasetDeleted(id.String()), hermes.DatasetDeletedEvent{DatasetID: id.String()})
	}
	return nil
}

// Submit creates a run for the dataset. A synchronous submit executes it
// before returning, and the run is returned even when the extraction fails.
// An async submit leaves it pending for the run loop.
func (e *Engine) Submit(ctx context.Context, datasetID uuid.UUID, spec RunSpec, async bool) (*store.Run, error) {
	p, err := e.Resolve(spec)
	if err != nil {
		return nil, err
	}
	rec, err := e.store.GetDataset(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if rec == nil {
		return nil, ErrDatasetNotFound
	}

	run := &store.Run{DatasetID: datasetID, Status: store.RunPending}
	p.applyTo(run)
	if err := e.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	e.logger.Info("run requested", "run_id", run.ID, "dataset_id", datasetID, "mode", run.Mode, "async", async)
	if e.hermes != nil {
		_ = e.hermes.Publish(hermes.SubjectRunRequested(run.ID.String()), hermes.RunRequestedEvent{
			RunID:     run.ID.String(),
			DatasetID: datasetID.String(),
			Mode:      run.Mode,
		})
	}

	if async {
		return run, nil
	}
	return run, e.execute(ctx, run, rec)
}

// Execute runs a stored run to completion or failure.
func (e *Engine) Execute(ctx context.Context, run *store.Run) error {
	rec, err := e.store.GetDataset(ctx, run.DatasetID)
	if err != nil {
		return fmt.Errorf("get dataset: %w", err)
	}
	if rec == nil {
		return e.fail(ctx, run, ErrDatasetNotFound, 0)
	}
	return e.execute(ctx, run, rec)
}

func (e *Engine) execute(ctx context.Context, run *store.Run, rec *store.Dataset) error {
	start := time.Now()

	ds, err := rec.ToPareto()
	if err != nil {
		return e.fail(ctx, run, err, time.Since(start))
	}
	p, err := e.Resolve(specFromRun(run))
	if err != nil {
		return e.fail(ctx, run, err, time.Since(start))
	}
	res, err := e.compute(ctx, ds, p)
	if err != nil {
		return e.fail(ctx, run, err, time.Since(start))
	}

	now := time.Now()
	run.Status = store.RunCompleted
	run.Error = ""
	run.Front = res.Front.Names()
	run.Admitted = res.Admitted
	run.DominatedBy = res.DominatedBy
	run.DurationMs = now.Sub(start).Milliseconds()
	run.CompletedAt = &now
	if err := e.store.UpdateRun(ctx, run); err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	e.logger.Info("run completed", "run_id", run.ID, "mode", run.Mode, "items", ds.Len(), "front", len(run.Front))
	if e.hermes != nil {
		_ = e.hermes.Publish(hermes.SubjectRunCompleted(run.ID.String()), hermes.RunCompletedEvent{
			RunID:      run.ID.String(),
			DatasetID:  run.DatasetID.String(),
			Mode:       run.Mode,
			Front:      run.Front,
			Items:      ds.Len(),
			DurationMs: run.DurationMs,
		})
	}
	return nil
}

// fail marks run failed and returns cause.
func (e *Engine) fail(ctx context.Context, run *store.Run, cause error, elapsed time.Duration) error {
	now := time.Now()
	run.Status = store.RunFailed
	run.Error = cause.Error()
	run.DurationMs = elapsed.Milliseconds()
	run.CompletedAt = &now
	if err := e.store.UpdateRun(ctx, run); err != nil {
		e.logger.Error("failed to record run failure", "run_id", run.ID, "error", err)
	}

	e.logger.Warn("run failed", "run_id", run.ID, "error", cause)
	if e.hermes != nil {
		_ = e.hermes.Publish(hermes.SubjectRunFailed(run.ID.String()), hermes.RunFailedEvent{
			RunID:     run.ID.String(),
			DatasetID: run.DatasetID.String(),
			Error:     run.Error,
		})
	}
	return cause
}

func (e *Engine) runLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.processPendingRuns(ctx)
		}
	}
}

func (e *Engine) processPendingRuns(ctx context.Context) {
	runs, err := e.store.GetPendingRuns(ctx, e.cfg.Engine.BatchSize)
	if err != nil {
		e.logger.Error("failed to get pending runs", "error", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	e.logger.Debug("processing pending runs", "count", len(runs))
	for _, run := range runs {
		select {
		case <-e.stopCh:
			return
		default:
		}
		if err := e.Execute(ctx, run); err != nil {
			e.logger.Debug("pending run did not complete", "run_id", run.ID, "error", err)
		}
	}
}

func (e *Engine) statsLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.publishStats(ctx)
		}
	}
}

func (e *Engine) publishStats(ctx context.Context) {
	if e.hermes == nil {
		return
	}
	stats, err := e.store.GetStats(ctx)
	if err != nil {
		e.logger.Error("failed to get stats", "error", err)
		return
	}
	_ = e.hermes.Publish(hermes.SubjectStats, hermes.StatsEvent{
		Datasets:  stats.TotalDatasets,
		Pending:   stats.TotalPending,
		Completed: stats.TotalCompleted,
		Failed:    stats.TotalFailed,
		AvgMs:     stats.AvgDurationMs,
		Timestamp: time.Now(),
	})
}

// SetupSubscriptions queues runs requested over hermes.
func (e *Engine) SetupSubscriptions() error {
	if e.hermes == nil {
		return nil
	}
	return e.hermes.Subscribe(hermes.SubjectRunRequest, func(_ string, data []byte) {
		var req hermes.RunRequestEvent
		if err := json.Unmarshal(data, &req); err != nil {
			e.logger.Warn("invalid run request event", "error", err)
			return
		}
		id, err := uuid.Parse(req.DatasetID)
		if err != nil {
			e.logger.Warn("invalid dataset id in run request", "dataset_id", req.DatasetID)
			return
		}
		spec := RunSpec{
			Mode:            pareto.Mode(req.Mode),
			ReferenceIndex:  req.ReferenceIndex,
			Smoothness:      req.Smoothness,
			TieBreak:        pareto.TieBreak(req.TieBreak),
			StrictDominance: req.StrictDominance,
		}
		run, err := e.Submit(context.Background(), id, spec, true)
		if err != nil {
			e.logger.Error("failed to queue run from hermes request", "dataset_id", id, "error", err)
			return
		}
		e.logger.Info("run queued from hermes request", "run_id", run.ID)
	})
}

func (e *Engine) Stats(ctx context.Context) (*store.Stats, error) {
	return e.store.GetStats(ctx)
}
