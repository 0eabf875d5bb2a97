package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the tables and indexes if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateDataset(ctx context.Context, ds *Dataset) error {
	itemsJSON, err := json.Marshal(ds.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	labels := ds.Labels
	if labels == nil {
		labels = []string{}
	}

	return s.pool.QueryRow(ctx, `
		INSERT INTO pareto_datasets (name, labels, items, item_count)
		VALUES ($1, $2, $3, $4)
		RETURNING dataset_id, created_at`,
		ds.Name, labels, itemsJSON, len(ds.Items),
	).Scan(&ds.ID, &ds.CreatedAt)
}

func (s *PostgresStore) GetDataset(ctx context.Context, id uuid.UUID) (*Dataset, error) {
	ds := &Dataset{}
	var itemsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT dataset_id, name, labels, items, created_at
		FROM pareto_datasets WHERE dataset_id = $1`, id,
	).Scan(&ds.ID, &ds.Name, &ds.Labels, &itemsJSON, &ds.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(itemsJSON, &ds.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return ds, nil
}

func (s *PostgresStore) ListDatasets(ctx context.Context, limit, offset int) ([]*DatasetSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT dataset_id, name, labels, item_count, created_at
		FROM pareto_datasets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limitOrDefault(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*DatasetSummary
	for rows.Next() {
		d := &DatasetSummary{}
		if err := rows.Scan(&d.ID, &d.Name, &d.Labels, &d.ItemCount, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM pareto_datasets WHERE dataset_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const runColumns = `run_id, dataset_id, mode, reference_index, smoothness, tie_break, strict_dominance,
	status, error, front, admitted, dominated_by, duration_ms, created_at, completed_at`

func (s *PostgresStore) CreateRun(ctx context.Context, run *Run) error {
	if run.Status == "" {
		run.Status = RunPending
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO pareto_runs (dataset_id, mode, reference_index, smoothness, tie_break, strict_dominance, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING run_id, created_at`,
		run.DatasetID, run.Mode, run.ReferenceIndex, run.Smoothness, run.TieBreak, run.StrictDominance, run.Status,
	).Scan(&run.ID, &run.CreatedAt)
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM pareto_runs WHERE run_id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

func (s *PostgresStore) UpdateRun(ctx context.Context, run *Run) error {
	var dominatedJSON []byte
	if run.DominatedBy != nil {
		var err error
		if dominatedJSON, err = json.Marshal(run.DominatedBy); err != nil {
			return fmt.Errorf("encode dominated_by: %w", err)
		}
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE pareto_runs SET
			status = $2, error = NULLIF($3, ''), front = $4, admitted = $5,
			dominated_by = $6, duration_ms = $7, completed_at = $8
		WHERE run_id = $1`,
		run.ID, run.Status, run.Error, run.Front, run.Admitted,
		dominatedJSON, run.DurationMs, run.CompletedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM pareto_runs WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.DatasetID != nil {
		n++
		query += fmt.Sprintf(" AND dataset_id = $%d", n)
		args = append(args, *filter.DatasetID)
	}
	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY created_at DESC"
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limitOrDefault(filter.Limit))
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *PostgresStore) GetPendingRuns(ctx context.Context, limit int) ([]*Run, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+runColumns+` FROM pareto_runs
		WHERE status = 'pending'
		ORDER BY created_at ASC
		LIMIT $1`, limitOrDefault(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM pareto_datasets),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms) FILTER (WHERE status = 'completed'), 0)
		FROM pareto_runs`,
	).Scan(&stats.TotalDatasets, &stats.TotalPending, &stats.TotalCompleted, &stats.TotalFailed, &stats.AvgDurationMs)
	return stats, err
}

func scanRun(row pgx.Row) (*Run, error) {
	r := &Run{}
	var runError sql.NullString
	var dominatedJSON []byte
	if err := row.Scan(
		&r.ID, &r.DatasetID, &r.Mode, &r.ReferenceIndex, &r.Smoothness, &r.TieBreak, &r.StrictDominance,
		&r.Status, &runError, &r.Front, &r.Admitted, &dominatedJSON, &r.DurationMs, &r.CreatedAt, &r.CompletedAt,
	); err != nil {
		return nil, err
	}
	if runError.Valid {
		r.Error = runError.String
	}
	if dominatedJSON != nil {
		_ = json.Unmarshal(dominatedJSON, &r.DominatedBy)
	}
	return r, nil
}

func scanRuns(rows pgx.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
