package repository

import (
	"context"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

// RunRepository records analysis runs for audit. The engine itself is
// stateless; history is a service-layer concern and entirely optional.
type RunRepository interface {
	CreateRun(ctx context.Context, run *domain.AnalysisRun) error
	GetRun(ctx context.Context, id int64) (*domain.AnalysisRun, error)
	ListRuns(ctx context.Context, limit int) ([]domain.AnalysisRun, error)
}
