package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rickyckwong/transfer-suggest/internal/cache"
	"github.com/rickyckwong/transfer-suggest/internal/domain"
	"github.com/rickyckwong/transfer-suggest/internal/engine"
	"github.com/rickyckwong/transfer-suggest/internal/export"
	"github.com/rickyckwong/transfer-suggest/internal/ingest"
	"github.com/rickyckwong/transfer-suggest/internal/repository"
	"github.com/rickyckwong/transfer-suggest/internal/storage"
)

const reportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferService orchestrates one analysis: ingest the uploaded dataset,
// run the allocation engine, fold the summary, and optionally record the run
// and archive the exported report. Run history and archiving are disabled by
// passing nil collaborators.
type TransferService struct {
	engine *engine.Engine
	cache  cache.SummaryCache
	runs   repository.RunRepository
	store  storage.ObjectStorage
}

func NewTransferService(eng *engine.Engine, cacheImpl cache.SummaryCache, runs repository.RunRepository, store storage.ObjectStorage) *TransferService {
	if eng == nil {
		eng = engine.New()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	return &TransferService{engine: eng, cache: cacheImpl, runs: runs, store: store}
}

// AnalyzeFile runs the full analysis over a dataset file on disk.
func (s *TransferService) AnalyzeFile(ctx context.Context, path, filename string, mode domain.Mode) (*domain.AnalysisResult, error) {
	startedAt := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	rows, err := ingest.ReadFile(path)
	if err != nil {
		s.recordRun(ctx, filename, mode, startedAt, 0, nil, err)
		return nil, err
	}

	records, err := engine.NormalizeRows(rows)
	if err != nil {
		s.recordRun(ctx, filename, mode, startedAt, 0, nil, err)
		return nil, err
	}

	result, err := s.analyze(ctx, records, mode, cache.HashDataset(content))
	s.recordRun(ctx, filename, mode, startedAt, len(records), result, err)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("filename", filename).
		Str("mode", string(mode)).
		Int("records", len(records)).
		Int("lines", result.Summary.TotalLines).
		Int("qty", result.Summary.TotalTransferQty).
		Dur("elapsed", time.Since(startedAt)).
		Msg("analysis completed")

	return result, nil
}

// Analyze runs the engine over already-normalized records. No caching or run
// history applies on this path; it exists for callers that own ingestion.
func (s *TransferService) Analyze(ctx context.Context, records []domain.InventoryRecord, mode domain.Mode) (*domain.AnalysisResult, error) {
	return s.analyze(ctx, records, mode, "")
}

func (s *TransferService) analyze(ctx context.Context, records []domain.InventoryRecord, mode domain.Mode, datasetHash string) (*domain.AnalysisResult, error) {
	recs, err := s.engine.Generate(ctx, records, mode)
	if err != nil {
		return nil, err
	}

	result := &domain.AnalysisResult{Mode: mode, Recommendations: recs}

	summary := s.cachedSummary(ctx, datasetHash, mode, recs)
	result.Summary = *summary

	if len(recs) == 0 {
		result.Diagnostic = engine.Diagnose(records, mode)
	}
	return result, nil
}

func (s *TransferService) cachedSummary(ctx context.Context, datasetHash string, mode domain.Mode, recs []domain.TransferRecommendation) *domain.Summary {
	if datasetHash != "" {
		if cached, ok, err := s.cache.Get(ctx, datasetHash, mode); err == nil && ok {
			return cached
		} else if err != nil {
			log.Warn().Err(err).Msg("transfer: cache get summary failed")
		}
	}

	summary := engine.Summarize(recs)

	if datasetHash != "" {
		if err := s.cache.Set(ctx, datasetHash, mode, &summary); err != nil {
			log.Warn().Err(err).Msg("transfer: cache set summary failed")
		}
	}
	return &summary
}

// ExportReport renders the result workbook and, when an archive store is
// configured, uploads a copy keyed by timestamp and mode.
func (s *TransferService) ExportReport(ctx context.Context, result *domain.AnalysisResult) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := export.WriteReport(&buf, result); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("transfer_suggestions_%s_mode%s.xlsx",
		time.Now().Format("20060102"), result.Mode)

	if s.store != nil {
		if err := s.store.UploadObject(ctx, filename, reportContentType, buf.Bytes()); err != nil {
			// Archiving is best effort; the caller still gets the report.
			log.Warn().Err(err).Str("key", filename).Msg("transfer: report archive failed")
		}
	}

	return buf.Bytes(), filename, nil
}

// ListReports lists archived report objects. Without an archive store the
// listing is empty.
func (s *TransferService) ListReports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.store == nil {
		return []storage.ObjectInfo{}, nil
	}
	return s.store.ListObjects(ctx, "transfer_suggestions_")
}

// ListRuns returns recent analysis runs, newest first.
func (s *TransferService) ListRuns(ctx context.Context, limit int) ([]domain.AnalysisRun, error) {
	if s.runs == nil {
		return []domain.AnalysisRun{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}

// GetRun returns one analysis run, or nil when it does not exist or run
// history is disabled.
func (s *TransferService) GetRun(ctx context.Context, id int64) (*domain.AnalysisRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.GetRun(ctx, id)
}

func (s *TransferService) recordRun(ctx context.Context, filename string, mode domain.Mode, startedAt time.Time, recordCount int, result *domain.AnalysisResult, runErr error) {
	if s.runs == nil {
		return
	}

	now := time.Now()
	run := &domain.AnalysisRun{
		Filename:    filename,
		Mode:        string(mode),
		Status:      domain.RunStatusCompleted,
		RecordCount: recordCount,
		StartedAt:   startedAt,
		CompletedAt: &now,
	}
	if runErr != nil {
		run.Status = domain.RunStatusFailed
		run.ErrorMessage = runErr.Error()
	} else if result != nil {
		run.TotalLines = result.Summary.TotalLines
		run.TotalTransferQty = result.Summary.TotalTransferQty
	}

	if err := s.runs.CreateRun(ctx, run); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("transfer: failed to record analysis run")
	}
}
