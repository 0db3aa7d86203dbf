package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
	"github.com/rickyckwong/transfer-suggest/internal/repository"
)

// RunRepository persists analysis runs in Postgres.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

var _ repository.RunRepository = (*RunRepository)(nil)

// EnsureSchema creates the analysis_runs table if it does not exist yet.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id                 BIGSERIAL PRIMARY KEY,
			filename           TEXT NOT NULL,
			mode               TEXT NOT NULL,
			status             TEXT NOT NULL,
			record_count       INTEGER NOT NULL DEFAULT 0,
			total_lines        INTEGER NOT NULL DEFAULT 0,
			total_transfer_qty INTEGER NOT NULL DEFAULT 0,
			error_message      TEXT NOT NULL DEFAULT '',
			started_at         TIMESTAMPTZ NOT NULL,
			completed_at       TIMESTAMPTZ
		)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure analysis_runs schema: %w", err)
	}
	return nil
}

func (r *RunRepository) CreateRun(ctx context.Context, run *domain.AnalysisRun) error {
	const query = `
		INSERT INTO analysis_runs
			(filename, mode, status, record_count, total_lines, total_transfer_qty, error_message, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		run.Filename, run.Mode, run.Status, run.RecordCount, run.TotalLines,
		run.TotalTransferQty, run.ErrorMessage, run.StartedAt, run.CompletedAt,
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return nil
}

func (r *RunRepository) GetRun(ctx context.Context, id int64) (*domain.AnalysisRun, error) {
	const query = `
		SELECT id, filename, mode, status, record_count, total_lines, total_transfer_qty,
		       error_message, started_at, completed_at
		FROM analysis_runs WHERE id = $1`

	var run domain.AnalysisRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis run %d: %w", id, err)
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]domain.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, filename, mode, status, record_count, total_lines, total_transfer_qty,
		       error_message, started_at, completed_at
		FROM analysis_runs
		ORDER BY started_at DESC, id DESC
		LIMIT $1`

	runs := make([]domain.AnalysisRun, 0, limit)
	if err := r.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return runs, nil
}
